package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var streamLines = []string{
	`{"type":"patchset-created","change":{"project":"platform/core","branch":"main","id":"Iaaa","number":100},` +
		`"patchSet":{"number":1,"revision":"1111111111aaaa","ref":"refs/changes/00/100/1"},` +
		`"uploader":{"name":"Jane Roe","email":"jane@example.com"},"eventCreatedOn":1700000000}`,
	`{"type":"comment-added","change":{"project":"platform/core","branch":"main","id":"Iaaa","number":100},` +
		`"patchSet":{"number":1,"revision":"1111111111aaaa","uploader":{"name":"Jane Roe","email":"jane@example.com"}},` +
		`"author":{"name":"Bob"},"comment":"LGTM"}`,
	``,
	`not json at all`,
	`{"type":"patchset-created","change":{"project":"sandbox","id":"Ibbb","number":"7"},` +
		`"patchSet":{"number":"2","revision":"2222222222bbbb","isDraft":true}}`,
	`{"type":"ref-updated","refUpdate":{"project":"platform/core","refName":"refs/heads/main"}}`,
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

type parseResponse struct {
	Success bool        `json:"success"`
	Data    ParseResult `json:"data"`
}

func TestParseCmd_JSON(t *testing.T) {
	out, err := runCLI(t, strings.Join(streamLines, "\n"), "parse")
	require.NoError(t, err)

	var resp parseResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.True(t, resp.Success)

	assert.Equal(t, "stdin", resp.Data.Source)
	assert.Equal(t, 6, resp.Data.Stats.Lines)
	assert.Equal(t, 4, resp.Data.Stats.Events)
	assert.Equal(t, 1, resp.Data.Stats.Malformed)
	require.Len(t, resp.Data.Events, 4)

	first := resp.Data.Events[0]
	assert.Equal(t, "patchset-created", first.Type)
	assert.Equal(t, "100", first.Change.Number)
	assert.Equal(t, "1", first.PatchSet.Number)
	assert.Equal(t, "refs/changes/00/100/1", first.PatchSet.Ref)
	assert.Nil(t, first.PatchSet.Uploader)
	assert.Equal(t, "jane@example.com", first.Uploader.Email)
}

func TestParseCmd_FilterAndText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(streamLines, "\n")), 0644))

	out, err := runCLI(t, "", "parse", path, "--type", "patchset-created", "--exclude", "sandbox", "--format", "text")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `patchset-created platform/core#100 [main] PatchSet: 1 (11111111) by "Jane Roe" <jane@example.com>`, lines[0])
	assert.Equal(t, "1 events from "+path+" (6 lines, 1 malformed)", lines[1])
}

func TestParseCmd_MissingFile(t *testing.T) {
	out, err := runCLI(t, "", "parse", filepath.Join(t.TempDir(), "nope.log"))
	require.Error(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INPUT_ERROR", resp.Error.Code)
}

func TestParseCmd_InvalidFormat(t *testing.T) {
	_, err := runCLI(t, "", "parse", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

type patchsetResponse struct {
	Success bool         `json:"success"`
	Data    PatchSetList `json:"data"`
}

func TestPatchsetCmd_Deduplicates(t *testing.T) {
	out, err := runCLI(t, strings.Join(streamLines, "\n"), "patchset", "-")
	require.NoError(t, err)

	var resp patchsetResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Data.PatchSets, 2)

	core := resp.Data.PatchSets[0]
	assert.Equal(t, "platform/core", core.Project)
	assert.Equal(t, "100", core.Change)
	assert.Equal(t, 2, core.Events)
	assert.Equal(t, "1111111111aaaa", core.PatchSet.Revision)
	require.NotNil(t, core.PatchSet.Uploader)
	assert.Equal(t, "Jane Roe", core.PatchSet.Uploader.Name)

	sandbox := resp.Data.PatchSets[1]
	assert.Equal(t, "sandbox", sandbox.Project)
	assert.True(t, sandbox.PatchSet.Draft)
	assert.Equal(t, 1, sandbox.Events)
}

func TestPatchsetCmd_Text(t *testing.T) {
	out, err := runCLI(t, strings.Join(streamLines, "\n"), "patchset", "--project", "sandbox", "--format", "text")
	require.NoError(t, err)

	assert.Equal(t,
		"sandbox#7 PatchSet: 2 2222222222bbbb draft\n1 patchsets from stdin",
		strings.TrimSpace(out))
}
