package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pjanik/dayplan/config"
	"github.com/pjanik/dayplan/core/model"
	"github.com/pjanik/dayplan/core/planner"
	"github.com/pjanik/dayplan/infra/logger"
)

var (
	dayFilePath string
	planDate    string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a one-shot plan from a day file",
	RunE:  planDay,
}

func init() {
	planCmd.Flags().StringVarP(&dayFilePath, "file", "f", "day.yaml", "day file with tasks, habits and fixed blocks")
	planCmd.Flags().StringVarP(&planDate, "date", "d", "", "plan date as YYYY-MM-DD, default today")
	rootCmd.AddCommand(planCmd)
}

// DayFile is the one-shot planning input.
type DayFile struct {
	Tasks         []model.Task       `json:"tasks" yaml:"tasks"`
	Habits        []model.Habit      `json:"habits" yaml:"habits"`
	FixedBlocks   []model.FixedBlock `json:"fixed_blocks" yaml:"fixed_blocks"`
	EnergyProfile []model.Energy     `json:"energy_profile" yaml:"energy_profile"`
}

// LoadDayFile reads a DayFile from a JSON or YAML file.
func LoadDayFile(path string) (DayFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return DayFile{}, err
	}
	var df DayFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &df)
	case ".json":
		err = json.Unmarshal(b, &df)
	default:
		return DayFile{}, fmt.Errorf("unsupported day file format: %s", path)
	}
	return df, err
}

func planDay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	df, err := LoadDayFile(dayFilePath)
	if err != nil {
		return fmt.Errorf("load day file: %w", err)
	}
	logg := logger.New("plan-command")

	date := time.Now()
	if planDate != "" {
		date, err = time.ParseInLocation("2006-01-02", planDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
	}
	start, end, err := cfg.Planner.Window(date)
	if err != nil {
		return err
	}
	for i := range df.Tasks {
		if err := df.Tasks[i].Validate(); err != nil {
			return err
		}
		df.Tasks[i].EnsureID()
	}

	result := planner.GeneratePlan(planner.Request{
		DayStart:     start,
		DayEnd:       end,
		BlockMinutes: cfg.Planner.BlockMinutes,
		BreakMinutes: cfg.Planner.BreakMinutes,
		Tasks:        df.Tasks,
		Habits:       df.Habits,
		Fixed:        df.FixedBlocks,
		Profile:      model.EnergyProfile(df.EnergyProfile),
	})
	for _, h := range result.DroppedHabits {
		logg.Warnf("habit %q fits in no work slot, dropped from plan", h)
	}
	printPlan(cmd, result.Blocks)
	return nil
}

func printPlan(cmd *cobra.Command, blocks []model.Block) {
	for _, b := range blocks {
		label := fmt.Sprintf("%s-%s", b.Start.Format("15:04"), b.End.Format("15:04"))
		switch b.Kind {
		case model.KindFixed:
			cmd.Printf("%s  fixed  %s\n", label, b.Title)
		case model.KindBreak:
			cmd.Printf("%s  break\n", label)
		case model.KindHabit:
			cmd.Printf("%s  habit  %s\n", label, b.Habit)
		default:
			title := b.TaskTitle
			if title == "" {
				title = "-"
			}
			cmd.Printf("%s  work   %s\n", label, title)
		}
	}
}
