package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed variants.yaml
var defaultVariants []byte

// TestVariant describes one edition of the civics test.
type TestVariant struct {
	TestType       string `yaml:"testType" json:"testType"`
	File           string `yaml:"file" json:"-"`
	TotalQuestions int    `yaml:"totalQuestions" json:"totalQuestions"`
	QuestionsAsked int    `yaml:"questionsAsked" json:"questionsAsked"`
	PassThreshold  int    `yaml:"passThreshold" json:"passThreshold"`
	Description    string `yaml:"description" json:"description"`
	FilingDateInfo string `yaml:"filingDateInfo" json:"filingDateInfo"`

	// DynamicFacts maps question id -> fact kind name (see internal/facts).
	DynamicFacts map[int]string `yaml:"dynamicFacts" json:"-"`
}

type variantsFile struct {
	Variants []TestVariant `yaml:"variants"`
}

// LoadVariants parses the variants YAML at path, or the embedded default when
// path is empty.
func LoadVariants(path string) ([]TestVariant, error) {
	raw := defaultVariants
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read variants: %w", err)
		}
		raw = b
	}
	return ParseVariants(raw)
}

func ParseVariants(raw []byte) ([]TestVariant, error) {
	var vf variantsFile
	if err := yaml.Unmarshal(raw, &vf); err != nil {
		return nil, fmt.Errorf("parse variants: %w", err)
	}
	if err := validateVariants(vf.Variants); err != nil {
		return nil, err
	}
	return vf.Variants, nil
}

func validateVariants(vs []TestVariant) error {
	if len(vs) == 0 {
		return errors.New("variants: at least one test variant is required")
	}
	seen := make(map[string]struct{}, len(vs))
	var errs []error
	for i, v := range vs {
		id := strings.TrimSpace(v.TestType)
		if id == "" {
			errs = append(errs, fmt.Errorf("variants[%d]: testType is required", i))
			continue
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("variants[%d]: duplicate testType %q", i, id))
		}
		seen[id] = struct{}{}
		if strings.TrimSpace(v.File) == "" {
			errs = append(errs, fmt.Errorf("variant %s: file is required", id))
		}
		if v.QuestionsAsked <= 0 || v.PassThreshold <= 0 {
			errs = append(errs, fmt.Errorf("variant %s: questionsAsked and passThreshold must be positive", id))
		}
		if v.PassThreshold > v.QuestionsAsked {
			errs = append(errs, fmt.Errorf("variant %s: passThreshold %d exceeds questionsAsked %d", id, v.PassThreshold, v.QuestionsAsked))
		}
		if v.TotalQuestions > 0 && v.QuestionsAsked > v.TotalQuestions {
			errs = append(errs, fmt.Errorf("variant %s: questionsAsked %d exceeds totalQuestions %d", id, v.QuestionsAsked, v.TotalQuestions))
		}
	}
	return errors.Join(errs...)
}

// Find returns the variant with the given test type.
func Find(vs []TestVariant, testType string) (TestVariant, bool) {
	for _, v := range vs {
		if v.TestType == testType {
			return v, true
		}
	}
	return TestVariant{}, false
}
