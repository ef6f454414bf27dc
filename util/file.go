package util

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SaveJson writes data as JSON to path, creating the parent directories
func SaveJson(path string, data interface{}) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	bs, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0644)
}

// AppendJsonLine appends data as one JSON line to the file at path
func AppendJsonLine(path string, data interface{}) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	bs, err := json.Marshal(data)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(bs, '\n'))
	return err
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
