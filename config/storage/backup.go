package storage

import (
	"fmt"
	"io"
	"os"
)

// BackupSuffix is appended to a file name to form its backup sibling
const BackupSuffix = ".backup"

// BackupPath returns the single-generation backup path for filePath
func BackupPath(filePath string) string {
	return filePath + BackupSuffix
}

// CreateBackup copies filePath to its backup sibling, replacing any older backup.
// It returns the backup path. A missing source is not an error and yields "".
func CreateBackup(filePath string) (string, error) {
	if !FileExists(filePath) {
		return "", nil
	}

	backupPath := BackupPath(filePath)
	if err := copyFile(filePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	return backupPath, nil
}

// HasBackup reports whether a backup exists for filePath
func HasBackup(filePath string) bool {
	return FileExists(BackupPath(filePath))
}

// RestoreBackup puts the backup of filePath back in place
func RestoreBackup(filePath string) error {
	backupPath := BackupPath(filePath)
	if !FileExists(backupPath) {
		return fmt.Errorf("no backup file found for %s", filePath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	perm := os.FileMode(0600)
	if info, err := os.Stat(backupPath); err == nil {
		perm = info.Mode().Perm()
	}

	if err := AtomicWrite(filePath, data, perm); err != nil {
		return fmt.Errorf("failed to restore from backup: %w", err)
	}

	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	// Preserve permissions from source file
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
