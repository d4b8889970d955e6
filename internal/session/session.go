// Package session describes the build session a goal runs in: which project
// is being built, where its build output goes, and which revision of the
// sources is checked out.
//
// A Session is created once per runner invocation and handed to goals as
// read-only input. Goals must not mutate it.
package session

import (
	"maps"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/restviz/internal/config"
)

// Session is the ambient build state shared by every goal of one run.
type Session struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	Offline   bool      `json:"offline"`
	Project   Project   `json:"project"`
	Revision  *Revision `json:"revision,omitempty"`
}

// Project is the module being built.
type Project struct {
	Name       string            `json:"name"`
	BaseDir    string            `json:"base_directory"`
	BuildDir   string            `json:"build_directory"`
	SourceDirs []string          `json:"source_directories"`
	Properties map[string]string `json:"properties,omitempty"`
}

// New opens a session for the project described by cfg. Revision detection
// failures are not fatal; the session simply carries no revision.
func New(cfg *config.Config) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		StartTime: time.Now().UTC(),
		Offline:   cfg.Project.Offline,
		Project: Project{
			Name:       cfg.Project.Name,
			BaseDir:    cfg.Project.BaseDir,
			BuildDir:   cfg.Project.BuildDir,
			SourceDirs: append([]string(nil), cfg.Project.SourceDirs...),
			Properties: maps.Clone(cfg.Project.Properties),
		},
	}
	if rev, err := DetectRevision(cfg.Project.BaseDir); err == nil {
		s.Revision = rev
	}
	return s
}

// Property returns a user property and whether it was set.
func (s *Session) Property(key string) (string, bool) {
	v, ok := s.Project.Properties[key]
	return v, ok
}

// Snapshot returns a deep copy safe to hand to code outside the process
// boundary or to serialize concurrently.
func (s *Session) Snapshot() Session {
	cp := *s
	cp.Project.SourceDirs = append([]string(nil), s.Project.SourceDirs...)
	cp.Project.Properties = maps.Clone(s.Project.Properties)
	if s.Revision != nil {
		rev := *s.Revision
		cp.Revision = &rev
	}
	return cp
}
