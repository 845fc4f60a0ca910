package utils

import (
	"io"
	"os"

	glog "github.com/magicsong/color-glog"
)

func IsFileExists(path string) bool {
	glog.V(6).Infof("Checking if file exists at path=%q", path)
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// CopyFile copies src to dst, truncating any previous dst, and marks
// the copy executable.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
