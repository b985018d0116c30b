package initcmd

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
)

// maxBackups bounds the numbered backups kept next to a deck file.
const maxBackups = 100

// BackupFile copies path aside before it is overwritten with next. Earlier
// backups are never replaced: the copy goes to path.bak, or path.bak.1,
// path.bak.2 and so on when those exist. Returns an empty string if no backup
// was needed because the file doesn't exist or already holds next.
func BackupFile(path string, next []byte) (string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("stat existing file: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read existing file: %w", err)
	}
	if bytes.Equal(content, next) {
		return "", nil
	}

	backupPath, err := freeBackupPath(path)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(backupPath, content, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	return backupPath, nil
}

func freeBackupPath(path string) (string, error) {
	candidate := path + ".bak"
	for i := 1; i <= maxBackups; i++ {
		if !FileExists(candidate) {
			return candidate, nil
		}
		candidate = path + ".bak." + strconv.Itoa(i)
	}
	return "", fmt.Errorf("too many backups of %s, remove old .bak files", path)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
