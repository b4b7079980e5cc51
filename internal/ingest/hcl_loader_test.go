package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/keysearch/internal/tree"
)

const testHCL = `
region = "us-east-1"

resource "aws_instance" "web" {
  ami   = "ami-123"
  count = 2
  tags  = { Name = "web-server" }
  subnet_id = aws_subnet.main.id
}

resource "aws_instance" "db" {
  ami = "ami-456"
}

enabled = true
zones   = ["a", "b"]
`

func TestParseHCL(t *testing.T) {
	root, err := ParseHCL([]byte(testHCL), "main.tf")
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "resource", "resource", "enabled", "zones"}, keys(root))

	region, _ := root.Get("region")
	assert.Equal(t, "us-east-1", region.Str())

	web := root.Members()[1].Value
	inst, ok := web.Get("aws_instance")
	require.True(t, ok)
	body, ok := inst.Get("web")
	require.True(t, ok)
	assert.Equal(t, []string{"ami", "count", "tags", "subnet_id"}, keys(body))

	count, _ := body.Get("count")
	assert.Equal(t, tree.Number, count.Kind)
	assert.Equal(t, float64(2), count.Float())

	tags, _ := body.Get("tags")
	require.Equal(t, tree.Keyed, tags.Kind)
	name, _ := tags.Get("Name")
	assert.Equal(t, "web-server", name.Str())

	subnet, _ := body.Get("subnet_id")
	assert.Equal(t, "aws_subnet.main.id", subnet.Str(), "references keep their source text")

	zones, _ := root.Get("zones")
	assert.Equal(t, tree.Sequence, zones.Kind)
	assert.Equal(t, 2, zones.Len())

	enabled, _ := root.Get("enabled")
	assert.True(t, enabled.Truth())
}

func TestParseHCL_Invalid(t *testing.T) {
	_, err := ParseHCL([]byte(`resource "x" {`), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse hcl bad.hcl")
}
