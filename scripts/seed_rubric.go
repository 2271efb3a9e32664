package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"alfredoptarigan/flwts-grader/internal/config"
	"alfredoptarigan/flwts-grader/internal/repositories"
	"alfredoptarigan/flwts-grader/internal/services"
)

func main() {
	log.Println("🚀 Starting rubric seeding...")

	cfg := config.Load()

	path := flag.String("file", cfg.Rubric.Path, "rubric file (.json, .yaml or .yml)")
	name := flag.String("name", "", "rubric name to store under (defaults to the document name, then RUBRIC_NAME)")
	flag.Parse()

	log.Printf("📄 Reading rubric: %s", *path)
	doc, err := services.LoadRubricFile(*path)
	if err != nil {
		log.Fatalf("❌ Failed to read rubric: %v", err)
	}

	rubricName := *name
	if rubricName == "" {
		rubricName = doc.Name
	}
	if rubricName == "" {
		rubricName = cfg.Rubric.Name
	}

	seen := make(map[string]int, len(doc.TestAnswers))
	duplicates := 0
	for i, entry := range doc.TestAnswers {
		if first, ok := seen[entry.QuestionText]; ok {
			log.Printf("   ⚠️  Entry %d repeats the questionText of entry %d; only the first will ever match", i, first)
			duplicates++
			continue
		}
		seen[entry.QuestionText] = i
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	repo := repositories.NewRubricRepository(db)
	ctx := context.Background()

	if err := repo.ReplaceRubric(ctx, rubricName, doc.TestAnswers); err != nil {
		log.Fatalf("❌ Failed to store rubric: %v", err)
	}

	names, err := repo.ListRubricNames(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to list rubrics: %v", err)
	}

	// Summary
	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Seeding Summary:")
	log.Printf("   ✅ Rubric: %s", rubricName)
	log.Printf("   ✅ Entries: %d", len(doc.TestAnswers))
	log.Printf("   📋 Rubrics in database: %s", strings.Join(names, ", "))
	log.Println(strings.Repeat("=", 60))

	if duplicates > 0 {
		log.Println("⚠️  Rubric contains duplicate questions. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ Rubric seeded successfully!")
}
