// Package sysfs reads and writes the small attribute files exposed by
// sysfs and debugfs.
package sysfs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrEmpty is returned when an attribute file holds no value.
var ErrEmpty = errors.New("empty attribute")

// ErrNoMount is returned when no mount of the requested type exists.
var ErrNoMount = errors.New("filesystem not mounted")

// Unknown is the sentinel kept by integer attributes that could not be read.
const Unknown int64 = -1

// ReadString returns the first whitespace separated field of the file.
func ReadString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return fields[0], nil
}

// ReadInt parses the file as a decimal integer.
func ReadInt(path string) (int64, error) {
	s, err := ReadString(path)
	if err != nil {
		return Unknown, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Unknown, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// ReadHex parses the file as a hexadecimal integer, with or without 0x.
func ReadHex(path string) (int64, error) {
	s, err := ReadString(path)
	if err != nil {
		return Unknown, err
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return Unknown, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// IntOr returns the decimal value of dir/name, or fallback when it cannot be read.
func IntOr(dir, name string, fallback int64) int64 {
	v, err := ReadInt(filepath.Join(dir, name))
	if err != nil {
		return fallback
	}
	return v
}

// StringOr returns the first field of dir/name, or fallback when it cannot be read.
func StringOr(dir, name, fallback string) string {
	v, err := ReadString(filepath.Join(dir, name))
	if err != nil {
		return fallback
	}
	return v
}

// WriteString writes value to an existing attribute file.
func WriteString(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(value); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// FindMount returns the mount point of the first entry of type fstype in a
// mount table laid out like /proc/mounts.
func FindMount(mountTable, fstype string) (string, error) {
	f, err := os.Open(mountTable)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		if fields[2] == fstype {
			return unescapeMount(fields[1]), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", mountTable, err)
	}
	return "", fmt.Errorf("%s: %w", fstype, ErrNoMount)
}

// unescapeMount decodes the octal escapes the kernel uses for blanks in
// mount points.
func unescapeMount(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
