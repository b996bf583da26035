package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/hirohaya/racket-hero/storage"
)

// BackupInfo describes one stored database dump.
type BackupInfo struct {
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	RemoteURL string    `json:"remote_url,omitempty"`
}

type BackupService interface {
	Create(ctx context.Context) (*BackupInfo, error)
	List(ctx context.Context) ([]BackupInfo, error)
	// Restore loads a dump into the database. A safety backup of the
	// current state is taken first.
	Restore(ctx context.Context, filename string) error
	Delete(ctx context.Context, filename string) error
}

// Backup filenames are generated, never user-supplied paths.
var backupFilenamePattern = regexp.MustCompile(`^backup_[0-9]{8}_[0-9]{6}\.sql$`)

type backupService struct {
	databaseURL string
	dir         string
	uploader    storage.FileUploader
	logger      *slog.Logger
}

// NewBackupService stores pg_dump output under dir. uploader may be nil;
// when set, every created dump is also pushed to remote storage.
func NewBackupService(databaseURL, dir string, uploader storage.FileUploader, logger *slog.Logger) BackupService {
	return &backupService{
		databaseURL: databaseURL,
		dir:         dir,
		uploader:    uploader,
		logger:      logger,
	}
}

func (s *backupService) Create(ctx context.Context) (*BackupInfo, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	filename := fmt.Sprintf("backup_%s.sql", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, filename)

	cmd := exec.CommandContext(ctx, "pg_dump", "--no-owner", "--clean", "--if-exists",
		"--file", path, s.databaseURL)
	if out, err := cmd.CombinedOutput(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("pg_dump failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup file: %w", err)
	}

	info := &BackupInfo{
		Filename:  filename,
		SizeBytes: stat.Size(),
		CreatedAt: stat.ModTime(),
	}
	s.logger.Info("database backup created",
		slog.String("filename", filename),
		slog.Int64("size_bytes", info.SizeBytes),
	)

	if s.uploader != nil {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open backup for upload: %w", err)
		}
		defer file.Close()

		result, err := s.uploader.Upload(ctx, "backups/"+filename, "application/sql", file)
		if err != nil {
			// The local dump is intact; report the upload failure but keep
			// the backup usable.
			s.logger.Error("backup upload failed", slog.String("filename", filename), slog.Any("error", err))
		} else {
			info.RemoteURL = result.Location
		}
	}
	return info, nil
}

func (s *backupService) List(ctx context.Context) ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !backupFilenamePattern.MatchString(entry.Name()) {
			continue
		}
		fileInfo, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Filename:  entry.Name(),
			SizeBytes: fileInfo.Size(),
			CreatedAt: fileInfo.ModTime(),
		})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

func (s *backupService) Restore(ctx context.Context, filename string) error {
	if !backupFilenamePattern.MatchString(filename) {
		return ErrBackupNotFound
	}
	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("failed to stat backup %s: %w", filename, err)
	}

	// Snapshot the current state before overwriting it.
	if _, err := s.Create(ctx); err != nil {
		return fmt.Errorf("failed to create pre-restore backup: %w", err)
	}

	cmd := exec.CommandContext(ctx, "psql", "--quiet", "--single-transaction",
		"--file", path, s.databaseURL)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("psql restore failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	s.logger.Info("database restored from backup", slog.String("filename", filename))
	return nil
}

func (s *backupService) Delete(ctx context.Context, filename string) error {
	if !backupFilenamePattern.MatchString(filename) {
		return ErrBackupNotFound
	}
	path := filepath.Join(s.dir, filename)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("failed to delete backup %s: %w", filename, err)
	}

	if s.uploader != nil {
		if err := s.uploader.Delete(ctx, "backups/"+filename); err != nil {
			s.logger.Error("failed to delete remote backup copy",
				slog.String("filename", filename), slog.Any("error", err))
		}
	}
	s.logger.Info("backup deleted", slog.String("filename", filename))
	return nil
}
