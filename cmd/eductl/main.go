package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"gorm.io/gorm"

	"github.com/noah-isme/edu-records-api/internal/config"
	"github.com/noah-isme/edu-records-api/internal/database"
	"github.com/noah-isme/edu-records-api/internal/models"
	"github.com/noah-isme/edu-records-api/internal/repository"
)

const usage = `usage: eductl <command> [flags]

commands:
  migrate                 apply the schema to the configured database
  roster --course <id>    print enrolled students with attendance counts
`

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	switch os.Args[1] {
	case "migrate":
		if err := database.Migrate(db); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
		color.Green("Schema is up to date (%s)", cfg.DatabaseDriver)
	case "roster":
		if err := runRoster(db, os.Args[2:]); err != nil {
			logger.Fatal().Err(err).Msg("roster failed")
		}
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runRoster(db *gorm.DB, args []string) error {
	flags := flag.NewFlagSet("roster", flag.ContinueOnError)
	courseID := flags.UintP("course", "c", 0, "course id")
	timeout := flags.Duration("timeout", 10*time.Second, "query timeout")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *courseID == 0 {
		return fmt.Errorf("--course is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	course, err := repository.NewCourseRepository(db).GetByID(ctx, *courseID)
	if err != nil {
		return fmt.Errorf("load course %d: %w", *courseID, err)
	}

	rows, err := repository.NewReportRepository(db).CourseRoster(ctx, *courseID)
	if err != nil {
		return err
	}

	color.Cyan("\n=== %s %s (%s) ===", course.Code, course.Name, course.Term)
	if len(rows) == 0 {
		color.Yellow("No students enrolled.")
		return nil
	}

	renderRoster(rows)
	return nil
}

func renderRoster(rows []models.RosterRow) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Code", "Name", "Present", "Late", "Absent", "Excused", "Rate (%)"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, row := range rows {
		rate := "-"
		if total := row.Total(); total > 0 {
			rate = strconv.FormatFloat(models.AttendanceRate(row.Present, row.Late, total), 'f', 2, 64)
		}
		table.Append([]string{
			row.StudentCode,
			row.FullName,
			green(row.Present),
			yellow(row.Late),
			red(row.Absent),
			strconv.FormatInt(row.Excused, 10),
			rate,
		})
	}
	table.Render()
}
