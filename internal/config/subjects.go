package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSubjects is the fixed subject list. Order is the display and
// iteration order everywhere.
var DefaultSubjects = []string{
	"Pendidikan Agama dan Budi Pekerti",
	"Pendidikan Kewarganegaraan",
	"Bahasa Indonesia",
	"Bahasa Inggris",
	"Matematika",
	"Ilmu Pengetahuan Alam",
	"Ilmu Pengetahuan Sosial",
	"Seni Budaya",
	"Pendidikan Jasmani, Olahraga, dan Kesehatan",
	"Informatika",
}

type subjectsFile struct {
	Subjects []string `yaml:"subjects"`
}

// LoadSubjects returns DefaultSubjects when path is empty, otherwise the
// list from the YAML file at path.
func LoadSubjects(path string) ([]string, error) {
	if path == "" {
		return append([]string(nil), DefaultSubjects...), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subjects file: %w", err)
	}
	return ParseSubjects(data)
}

func ParseSubjects(data []byte) ([]string, error) {
	var f subjectsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subjects: %w", err)
	}

	out := make([]string, 0, len(f.Subjects))
	seen := make(map[string]struct{}, len(f.Subjects))
	for _, s := range f.Subjects {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("duplicate subject %q", s)
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("subjects file lists no subjects")
	}
	return out, nil
}
