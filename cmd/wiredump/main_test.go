package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/wire"
	"github.com/oy3o/wire/frame"
	"github.com/oy3o/wire/schema"
)

const testSchema = `
[[message]]
name = "reading"
  [[message.field]]
  name = "sensor"
  type = "u16"
  [[message.field]]
  name = "flags"
  type = "bits"
`

func wireBits(p ...byte) wire.BitSet { return wire.BitsFromBytes(p) }

func TestRun(t *testing.T) {
	s, err := schema.Parse(testSchema)
	require.NoError(t, err)
	msg, err := pickMessage(s, "")
	require.NoError(t, err)
	assert.Equal(t, "reading", msg.Name())

	var in bytes.Buffer
	first := msg.New(uint16(7), wireBits(0x80))
	require.NoError(t, frame.WriteFrame[schema.Record](&in, msg, &first, frame.DefaultLimits()))
	// A frame too short for the sensor field is skipped.
	in.Write([]byte{0, 0, 0, 1, 0xFF})
	second := msg.New(uint16(9), wireBits())
	require.NoError(t, frame.WriteFrame[schema.Record](&in, msg, &second, frame.DefaultLimits()))

	var out bytes.Buffer
	frames, failed, err := run(&in, &out, msg, frame.DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, 2, frames)
	assert.Equal(t, 1, failed)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"sensor":7,"flags":"10000000"}`, lines[0])
	assert.JSONEq(t, `{"sensor":9,"flags":""}`, lines[1])
}

func TestRunBrokenStream(t *testing.T) {
	s, err := schema.Parse(testSchema)
	require.NoError(t, err)
	msg, err := s.Message("reading")
	require.NoError(t, err)

	var out bytes.Buffer
	_, _, err = run(bytes.NewReader([]byte{0, 0, 0, 9, 1}), &out, msg, frame.DefaultLimits())
	assert.Error(t, err)
	assert.Zero(t, out.Len())
}

func TestPickMessage(t *testing.T) {
	s, err := schema.Parse(testSchema)
	require.NoError(t, err)

	_, err = pickMessage(s, "nope")
	assert.ErrorIs(t, err, schema.ErrUnknownMessage)

	empty, err := schema.Parse("")
	require.NoError(t, err)
	_, err = pickMessage(empty, "")
	assert.ErrorIs(t, err, schema.ErrUnknownMessage)
}
