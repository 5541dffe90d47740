package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/lexkeep/pkg/fsutil"
)

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte("class A {\r\n}\r\n"))
	f.Add([]byte{})
	f.Add([]byte("\r\r\n\n"))

	f.Fuzz(func(t *testing.T, content []byte) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "f.txt")

		if err := fsutil.WriteAtomic(ctx, path, content, 0); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}
		got, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(got) != string(content) {
			t.Fatalf("content mismatch")
		}
		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil || modified {
			t.Fatalf("fresh file reported modified: %v %v", modified, err)
		}
		_ = os.Remove(path)
	})
}
