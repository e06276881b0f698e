package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/service"
)

// seedFile — формат YAML-файла с вопросами
type seedFile struct {
	Questions []service.QuestionInput `yaml:"questions"`
}

// NewSeedCmd загружает вопросы из YAML-файла в хранилище
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import questions from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "questions.yaml", "path to questions YAML file")
	return cmd
}

func runSeed(ctx context.Context, configPath, file string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	inputs, err := loadSeedFile(file)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()

	n, err := service.NewQuestionService(store.questions).ImportQuestions(ctx, inputs)
	if err != nil {
		return err
	}
	log.Printf("[Seed] Загружено вопросов: %d из %s", n, file)
	return nil
}

func loadSeedFile(path string) ([]service.QuestionInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if len(seed.Questions) == 0 {
		return nil, fmt.Errorf("seed file %s contains no questions", path)
	}
	return seed.Questions, nil
}
