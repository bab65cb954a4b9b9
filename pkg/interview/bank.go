package interview

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var defaultBankYAML []byte

// Layer is one topical stage of an interview.
type Layer struct {
	ID              string   `yaml:"id" json:"id"`
	Name            string   `yaml:"name" json:"name"`
	Description     string   `yaml:"description,omitempty" json:"description,omitempty"`
	InitialQuestion string   `yaml:"initial_question,omitempty" json:"initialQuestion,omitempty"`
	QuestionCount   int      `yaml:"question_count,omitempty" json:"questionCount,omitempty"`
	Questions       []string `yaml:"questions,omitempty" json:"questions,omitempty"`
}

// FirstQuestion returns the question a layer opens with.
func (l Layer) FirstQuestion() string {
	if len(l.Questions) > 0 {
		return l.Questions[0]
	}
	return l.InitialQuestion
}

// Bank is the static definition of both interview flows.
type Bank struct {
	FollowUpsPerLayer int     `yaml:"follow_ups_per_layer"`
	Assessment        []Layer `yaml:"assessment_layers"`
	ValidationLayers  []Layer `yaml:"validation_layers"`
}

// QuestionsPerAssessmentLayer is the initial question plus the dynamic follow-ups.
func (b *Bank) QuestionsPerAssessmentLayer() int {
	return 1 + b.FollowUpsPerLayer
}

// DefaultBank returns the embedded question bank.
func DefaultBank() *Bank {
	bank, err := ParseBank(defaultBankYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded question bank is invalid: %v", err))
	}
	return bank
}

// LoadBank reads a bank from a YAML file. An empty path yields the embedded bank.
func LoadBank(path string) (*Bank, error) {
	if path == "" {
		return DefaultBank(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}

	return ParseBank(data)
}

func ParseBank(data []byte) (*Bank, error) {
	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	if err := validateBank(&bank); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}

	return &bank, nil
}

func validateBank(bank *Bank) error {
	if bank.FollowUpsPerLayer < 0 {
		return fmt.Errorf("follow_ups_per_layer cannot be negative")
	}

	if len(bank.Assessment) == 0 {
		return fmt.Errorf("at least one assessment layer is required")
	}

	if err := validateLayers("assessment", bank.Assessment); err != nil {
		return err
	}
	for _, layer := range bank.Assessment {
		if layer.InitialQuestion == "" {
			return fmt.Errorf("assessment layer %q must have initial_question", layer.ID)
		}
	}

	if len(bank.ValidationLayers) == 0 {
		return fmt.Errorf("at least one validation layer is required")
	}

	if err := validateLayers("validation", bank.ValidationLayers); err != nil {
		return err
	}
	for _, layer := range bank.ValidationLayers {
		if layer.QuestionCount <= 0 {
			return fmt.Errorf("validation layer %q must have a positive question_count", layer.ID)
		}
	}

	return nil
}

func validateLayers(flow string, layers []Layer) error {
	seen := make(map[string]bool, len(layers))
	for i, layer := range layers {
		if layer.ID == "" {
			return fmt.Errorf("%s layer %d must have id", flow, i)
		}
		if layer.Name == "" {
			return fmt.Errorf("%s layer %q must have name", flow, layer.ID)
		}
		if seen[layer.ID] {
			return fmt.Errorf("duplicate %s layer id %q", flow, layer.ID)
		}
		seen[layer.ID] = true
	}
	return nil
}
