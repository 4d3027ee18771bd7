package project

import "testing"

func TestParseRemoteURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url      string
		repo     string
		cloneURL string
	}{
		{"git@github.com:acme/widget.git", "widget", "https://github.com/acme/widget.git"},
		{"git@gitlab.com:group/sub/tool.git", "tool", "https://gitlab.com/group/sub/tool.git"},
		{"ssh://git@github.com/acme/widget", "widget", "https://github.com/acme/widget.git"},
		{"https://github.com/acme/widget.git", "widget", "https://github.com/acme/widget.git"},
		{"https://token@github.com/acme/widget/", "widget", "https://github.com/acme/widget.git"},
		{"/srv/git/widget", "", "/srv/git/widget"},
		{"", "", ""},
	}
	for _, tt := range tests {
		got := parseRemoteURL(tt.url)
		if got.Repo != tt.repo || got.CloneURL != tt.cloneURL {
			t.Errorf("parseRemoteURL(%q) = %+v, want {%q %q}", tt.url, got, tt.repo, tt.cloneURL)
		}
	}
}

func TestReadOriginRemoteWithoutRepository(t *testing.T) {
	t.Parallel()

	if got := readOriginRemote(t.TempDir()); got != (remoteInfo{}) {
		t.Errorf("readOriginRemote() = %+v, want empty", got)
	}
}
