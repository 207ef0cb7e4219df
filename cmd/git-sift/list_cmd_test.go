package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cpa750/git-sift/internal/git"
	"github.com/cpa750/git-sift/internal/output"
)

var listBranches = []git.Branch{
	{Name: "dev", Kind: git.Local},
	{Name: "main", Kind: git.Local},
	{Name: "origin/feature", Kind: git.Remote},
	{Name: "origin/main", Kind: git.Remote},
}

func TestFilterBranches(t *testing.T) {
	t.Parallel()

	t.Run("empty query keeps order", func(t *testing.T) {
		t.Parallel()
		got := filterBranches(listBranches, "")
		if len(got) != len(listBranches) {
			t.Fatalf("filterBranches(\"\") returned %d branches, want %d", len(got), len(listBranches))
		}
		for i := range got {
			if got[i] != listBranches[i] {
				t.Errorf("filterBranches(\"\")[%d] = %v, want %v", i, got[i], listBranches[i])
			}
		}
	})

	t.Run("query keeps kind", func(t *testing.T) {
		t.Parallel()
		got := filterBranches(listBranches, "feat")
		if len(got) != 1 {
			t.Fatalf("filterBranches(feat) = %v, want one branch", got)
		}
		if got[0].Name != "origin/feature" || got[0].Kind != git.Remote {
			t.Errorf("filterBranches(feat)[0] = %v, want origin/feature remote", got[0])
		}
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		if got := filterBranches(listBranches, "zzz"); len(got) != 0 {
			t.Errorf("filterBranches(zzz) = %v, want none", got)
		}
	})
}

func TestPrintBranches(t *testing.T) {
	t.Parallel()

	t.Run("names", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := printBranches(output.New(&buf), listBranches[:2], false, true); err != nil {
			t.Fatalf("printBranches() = %v", err)
		}
		if got := buf.String(); got != "dev\nmain\n" {
			t.Errorf("printBranches(names) = %q, want %q", got, "dev\nmain\n")
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := printBranches(output.New(&buf), listBranches[2:3], true, false); err != nil {
			t.Fatalf("printBranches() = %v", err)
		}
		var items []branchJSON
		if err := json.Unmarshal(buf.Bytes(), &items); err != nil {
			t.Fatalf("invalid JSON %q: %v", buf.String(), err)
		}
		if len(items) != 1 || items[0] != (branchJSON{Name: "origin/feature", Kind: "remote"}) {
			t.Errorf("printBranches(json) = %+v, want origin/feature remote", items)
		}
	})

	t.Run("table", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := printBranches(output.New(&buf), listBranches, false, false); err != nil {
			t.Fatalf("printBranches() = %v", err)
		}
		got := buf.String()
		if !strings.Contains(got, "BRANCH") || !strings.Contains(got, "origin/main") {
			t.Errorf("printBranches(table) = %q, want header and rows", got)
		}
	})
}
