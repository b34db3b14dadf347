// Package results provides per-job output bookkeeping. Every pipeline run
// gets its own directory under a base directory, holding the original PDF,
// the generated funny PDF, and a metadata record.
package results

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// InfoFileName is the metadata file written into each job directory
	InfoFileName = "job.json"
	// OriginalFileName is the stored copy of the source document
	OriginalFileName = "original.pdf"
	// FunnyFileName is the generated output document
	FunnyFileName = "funny.pdf"
)

// JobInfo records what a pipeline run produced and how it was configured.
type JobInfo struct {
	ID             string    `json:"id"`
	Style          string    `json:"style"`
	EmojiEnabled   bool      `json:"emoji_enabled"`
	CatsEnabled    bool      `json:"cats_enabled"`
	CatEvery       int       `json:"cat_every"`
	RewriteEnabled bool      `json:"rewrite_enabled"`
	Seed           int64     `json:"seed,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	SourceFileName string    `json:"source_file_name,omitempty"`
	OriginalPDF    string    `json:"original_pdf"`
	FunnyPDF       string    `json:"funny_pdf"`
	Paragraphs     int       `json:"paragraphs"`
	Images         int       `json:"images"`
	Placeholders   int       `json:"placeholders"`
	Pages          int       `json:"pages"`
}

// Manager owns the base directory jobs are stored under.
type Manager struct {
	baseDir string
}

// NewManager creates a Manager rooted at baseDir. If baseDir is empty, the
// default location in the user's home directory is used.
func NewManager(baseDir string) (*Manager, error) {
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Join(homeDir, "funnypdf-results")
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &Manager{baseDir: baseDir}, nil
}

// GetBaseDir returns the base directory for results
func (m *Manager) GetBaseDir() string {
	return m.baseDir
}

// NewJob allocates a fresh job ID and its directory.
func (m *Manager) NewJob() (string, error) {
	id := uuid.NewString()
	if err := os.MkdirAll(m.JobDir(id), 0755); err != nil {
		return "", err
	}
	return id, nil
}

// JobDir returns the directory path for a job ID.
func (m *Manager) JobDir(id string) string {
	return filepath.Join(m.baseDir, sanitizeID(id))
}

// OriginalPath returns where the job's source copy lives.
func (m *Manager) OriginalPath(id string) string {
	return filepath.Join(m.JobDir(id), OriginalFileName)
}

// FunnyPath returns where the job's generated document lives.
func (m *Manager) FunnyPath(id string) string {
	return filepath.Join(m.JobDir(id), FunnyFileName)
}

// SaveJobInfo writes the job's metadata record.
func (m *Manager) SaveJobInfo(info *JobInfo) error {
	dir := m.JobDir(info.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, InfoFileName), data, 0644)
}

// LoadJobInfo reads the metadata record for a job ID.
func (m *Manager) LoadJobInfo(id string) (*JobInfo, error) {
	data, err := os.ReadFile(filepath.Join(m.JobDir(id), InfoFileName))
	if err != nil {
		return nil, err
	}

	info := &JobInfo{}
	if err := json.Unmarshal(data, info); err != nil {
		return nil, err
	}
	return info, nil
}

// ListJobs returns all jobs with readable metadata, newest first.
// Directories without a metadata record are skipped.
func (m *Manager) ListJobs() ([]*JobInfo, error) {
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		return nil, err
	}

	var jobs []*JobInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.LoadJobInfo(entry.Name())
		if err != nil {
			continue
		}
		jobs = append(jobs, info)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// DeleteJob removes a job directory and everything in it.
func (m *Manager) DeleteJob(id string) error {
	return os.RemoveAll(m.JobDir(id))
}

// CopyOriginal stores a copy of the source document in the job directory.
func (m *Manager) CopyOriginal(id, srcPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	return os.WriteFile(m.OriginalPath(id), data, 0644)
}

// sanitizeID keeps job directory names free of path separators.
func sanitizeID(id string) string {
	id = strings.ReplaceAll(id, "/", "_")
	id = strings.ReplaceAll(id, "\\", "_")
	id = strings.ReplaceAll(id, "..", "_")
	return id
}
