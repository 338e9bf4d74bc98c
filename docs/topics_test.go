package docs

import (
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics lists the topics of the readme bullet list ("* name: ...").
func readmeTopics(t *testing.T) []string {
	t.Helper()
	content, err := os.ReadFile("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}

	topicRe := regexp.MustCompile(`^([a-z-]+):`)
	var topics []string
	root := goldmark.DefaultParser().Parse(text.NewReader(content))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindListItem {
			return ast.WalkContinue, nil
		}
		item := string(n.FirstChild().Lines().Value(content))
		if m := topicRe.FindStringSubmatch(item); m != nil {
			topics = append(topics, m[1])
		}
		return ast.WalkSkipChildren, nil
	})
	return topics
}

func TestTopics(t *testing.T) {
	// Every topic listed in the readme exists, and every topic is listed.
	listed := readmeTopics(t)
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() unexpected error: %v", err)
	}
	if diff := cmp.Diff(all, slices.Sorted(slices.Values(listed))); diff != "" {
		t.Errorf("readme topics mismatch (-files +readme):\n%s", diff)
	}
}

func TestGetTopics(t *testing.T) {
	got, err := GetTopics("dates", "layouts")
	if err != nil {
		t.Fatalf("GetTopics() unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "# Dates") || !strings.Contains(got, "# Layouts") {
		t.Errorf("GetTopics() = %q..., want dates then layouts", got[:20])
	}

	every, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) unexpected error: %v", err)
	}
	if !strings.Contains(every, "# Configuration") {
		t.Errorf("GetTopic(*) has no configuration topic")
	}

	if _, err := GetTopic("sunflower"); err == nil {
		t.Errorf("GetTopic(sunflower) expected an error")
	}
}
