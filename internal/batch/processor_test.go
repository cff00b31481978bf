package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []WordEntry
		wantErr     bool
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "words only",
			fileContent: `straße
apfel
katze`,
			want: []WordEntry{
				{Word: "straße"},
				{Word: "apfel"},
				{Word: "katze"},
			},
		},
		{
			name: "language overrides",
			fileContent: `straße = de
hello = en_US
sol = es`,
			want: []WordEntry{
				{Word: "straße", Language: "de"},
				{Word: "hello", Language: "en_US"},
				{Word: "sol", Language: "es"},
			},
		},
		{
			name: "mixed format",
			fileContent: `straße
hello = en_US
apfel`,
			want: []WordEntry{
				{Word: "straße"},
				{Word: "hello", Language: "en_US"},
				{Word: "apfel"},
			},
		},
		{
			name: "empty lines and whitespace",
			fileContent: `
straße

apfel = de

  katze

`,
			want: []WordEntry{
				{Word: "straße"},
				{Word: "apfel", Language: "de"},
				{Word: "katze"},
			},
		},
		{
			name:        "windows line endings",
			fileContent: "straße\r\napfel = de\r\nkatze",
			want: []WordEntry{
				{Word: "straße"},
				{Word: "apfel", Language: "de"},
				{Word: "katze"},
			},
		},
		{
			name: "comments skipped",
			fileContent: `# nouns
straße
# verbs
laufen`,
			want: []WordEntry{
				{Word: "straße"},
				{Word: "laufen"},
			},
		},
		{
			name:        "empty word part ignored",
			fileContent: `= de`,
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tmpFile := filepath.Join(tmpDir, "words.txt")
			err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644)
			if err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := ReadBatchFile(tmpFile)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadBatchFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile_FileNotFound(t *testing.T) {
	_, err := ReadBatchFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}
