package seeders

import (
	"context"

	"github.com/shashiranjanraj/eduportal/app/models"
	"github.com/shashiranjanraj/eduportal/app/repositories"
)

func init() {
	Register("courses", SeedCourses)
}

// DemoCourses is the starter catalog.
var DemoCourses = []models.Course{
	{
		CourseName:    "Full-Stack Web Development",
		Description:   "Build and deploy a complete web application.",
		Duration:      "12 weeks",
		StartDate:     "2026-02-02",
		Objectives:    "Design REST APIs, build a frontend, deploy to the cloud.",
		CourseContent: "HTTP, databases, authentication, frontend frameworks, deployment.",
		Requirements:  "Basic programming knowledge.",
		CourseFee:     "450",
	},
	{
		CourseName:    "Data Analysis Fundamentals",
		Description:   "Turn raw data into decisions.",
		Duration:      "8 weeks",
		StartDate:     "2026-03-02",
		Objectives:    "Clean, explore and visualise data sets.",
		CourseContent: "Spreadsheets, SQL, statistics, dashboards.",
		Requirements:  "None.",
		CourseFee:     "300",
	},
	{
		CourseName:    "Cloud Foundations",
		Description:   "Core cloud services for developers.",
		Duration:      "6 weeks",
		StartDate:     "2026-04-06",
		Objectives:    "Run workloads on managed compute and storage.",
		CourseContent: "Networking, compute, object storage, IAM, cost control.",
		Requirements:  "Comfort with a command line.",
		CourseFee:     "250",
	},
}

// SeedCourses inserts the demo catalog, skipping courses already present by
// name so the seeder can be re-run.
func SeedCourses(ctx context.Context, store *repositories.Store) error {
	existing, err := store.Courses.All(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.CourseName] = true
	}

	for _, c := range DemoCourses {
		if have[c.CourseName] {
			continue
		}
		course := c
		if err := store.Courses.Create(ctx, &course); err != nil {
			return err
		}
	}
	return nil
}
