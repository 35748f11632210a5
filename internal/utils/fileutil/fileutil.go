package fileutil

import (
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data to a temporary file and then renames it to the target file.
// AtomicWriteFile 将数据写入临时文件，然后将其重命名为目标文件。
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename) // #nosec G703 // Safe: filepath.Dir cleans the path preventing traversal
	if err := EnsureDir(dir); err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(dir, "atomic-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name()) // Clean up if something fails

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Chmod(perm); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpFile.Name(), filename) // #nosec G703 // filename is validated by caller
}

// EnsureDir creates dir and its parents if missing.
// EnsureDir 在目录不存在时创建目录及其父目录。
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// PrepareFile makes sure filePath exists and is writable.
// With truncate set, any previous content is discarded.
// PrepareFile 确保文件存在且可写；truncate 为 true 时清空旧内容。
func PrepareFile(filePath string, truncate bool) error {
	safePath := filepath.Clean(filePath) // Sanitize path to prevent directory traversal
	if err := EnsureDir(filepath.Dir(safePath)); err != nil {
		return err
	}
	flags := os.O_CREATE | os.O_WRONLY
	if truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(safePath, flags, 0644) // #nosec G304 // filePath is sanitized with filepath.Clean
	if err != nil {
		return err
	}
	return f.Close()
}
