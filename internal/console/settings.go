// Package console is the operator schedule console: a terminal UI that
// previews duty decisions, adjusts calibration, and triggers announcements
// through the bot's cron endpoint.
package console

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yuchengtw/duty-roster-bot/internal/domain"
)

// Auth modes for the remote trigger call.
const (
	AuthBearer = "bearer"
	AuthManual = "manual"
)

// SavedGroup is an announcement target stored in the console settings.
type SavedGroup struct {
	Name    string `yaml:"name"`
	GroupID string `yaml:"group_id"`
}

// Settings is the console's persisted configuration. It is loaded once at
// session start and saved explicitly whenever the operator changes a value;
// nothing reads it ambiently.
type Settings struct {
	Endpoint    string       `yaml:"endpoint"`
	CronSecret  string       `yaml:"cron_secret"`
	AuthMode    string       `yaml:"auth_mode"`
	Groups      []SavedGroup `yaml:"groups"`
	GroupIndex  int          `yaml:"group_index"`
	StaffList   []string     `yaml:"staff_list"`
	Offset      int          `yaml:"offset"`
	TriggerDay  int          `yaml:"trigger_day"`
	TriggerTime string       `yaml:"trigger_time"`
	RotationTZ  string       `yaml:"rotation_tz"`
}

// DefaultSettings returns the configuration of a fresh console.
func DefaultSettings() *Settings {
	return &Settings{
		Endpoint: "http://localhost:3000/cron/announce",
		AuthMode: AuthBearer,
		Groups: []SavedGroup{
			{Name: "Duty Roster", GroupID: "C0DUTYROSTER"},
			{Name: "All Staff", GroupID: "C0ALLSTAFF"},
			{Name: "Section Chiefs", GroupID: "C0CHIEFS"},
		},
		StaffList:   append([]string(nil), domain.DefaultRoster...),
		TriggerDay:  domain.Monday,
		TriggerTime: "08:30",
		RotationTZ:  "Asia/Taipei",
	}
}

// LoadSettings reads the settings file, falling back to defaults when the
// file does not exist yet.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	s.normalize()
	return s, nil
}

// Save writes the settings file, creating its directory if needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// normalize repairs values an older or hand-edited file may carry.
func (s *Settings) normalize() {
	if s.AuthMode != AuthBearer && s.AuthMode != AuthManual {
		s.AuthMode = AuthBearer
	}
	if len(s.Groups) == 0 {
		s.Groups = DefaultSettings().Groups
	}
	if s.GroupIndex < 0 || s.GroupIndex >= len(s.Groups) {
		s.GroupIndex = 0
	}
	if len(s.StaffList) == 0 {
		s.StaffList = append([]string(nil), domain.DefaultRoster...)
	}
	if s.TriggerDay < domain.Monday || s.TriggerDay > domain.Sunday {
		s.TriggerDay = domain.Monday
	}
	if s.RotationTZ == "" {
		s.RotationTZ = "Asia/Taipei"
	}
}

// Group returns the currently selected announcement target.
func (s *Settings) Group() SavedGroup {
	if len(s.Groups) == 0 {
		return SavedGroup{}
	}
	return s.Groups[s.GroupIndex%len(s.Groups)]
}
