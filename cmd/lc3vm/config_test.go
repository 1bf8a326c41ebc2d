// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"flag"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	var output bytes.Buffer

	c, err := parseArgs([]string{"a.obj", "b.obj"}, &output)

	require.NoError(t, err)
	assert.False(t, c.Debug)
	assert.False(t, c.Trace)
	assert.Nil(t, c.Program)
	assert.Equal(t, logrus.WarnLevel, c.LogLevel)
	assert.Equal(t, []string{"a.obj", "b.obj"}, c.Images)
	assert.Empty(t, output.String())
}

func TestParseArgsFlags(t *testing.T) {
	var output bytes.Buffer

	c, err := parseArgs(
		[]string{"-debug", "-trace", "-pc", "0x4000", "-log-level", "debug", "rogue.obj"},
		&output,
	)

	require.NoError(t, err)
	assert.True(t, c.Debug)
	assert.True(t, c.Trace)
	require.NotNil(t, c.Program)
	assert.Equal(t, uint16(0x4000), *c.Program)
	assert.Equal(t, logrus.DebugLevel, c.LogLevel)
	assert.Equal(t, []string{"rogue.obj"}, c.Images)
}

func TestParseArgsNoImages(t *testing.T) {
	c, err := parseArgs(nil, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Empty(t, c.Images)
}

func TestParseArgsErrors(t *testing.T) {
	var output bytes.Buffer

	_, err := parseArgs([]string{"-pc", "3000", "a.obj"}, &output)
	assert.Error(t, err)

	_, err = parseArgs([]string{"-log-level", "loud", "a.obj"}, &output)
	assert.Error(t, err)

	_, err = parseArgs([]string{"-bogus"}, &output)
	assert.Error(t, err)
	assert.Contains(t, output.String(), "bogus")

	output.Reset()
	_, err = parseArgs([]string{"-h"}, &output)
	assert.Equal(t, flag.ErrHelp, err)
}

func TestParseCount(t *testing.T) {
	value, err := parseCount("#8")
	require.NoError(t, err)
	assert.Equal(t, uint16(8), value)

	value, err = parseCount("12")
	require.NoError(t, err)
	assert.Equal(t, uint16(12), value)

	_, err = parseCount("#-1")
	assert.Error(t, err)
}

func TestParseRange(t *testing.T) {
	addr, size, err := parseRange(nil, 0x3000, 8)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3000), addr)
	assert.Equal(t, uint16(8), size)

	addr, size, err = parseRange([]string{"0x4000"}, 0x3000, 8)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x4000), addr)
	assert.Equal(t, uint16(8), size)

	addr, size, err = parseRange([]string{"#3"}, 0x3000, 8)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3000), addr)
	assert.Equal(t, uint16(3), size)

	addr, size, err = parseRange([]string{"x4000", "2"}, 0x3000, 8)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x4000), addr)
	assert.Equal(t, uint16(2), size)

	_, _, err = parseRange([]string{"zz"}, 0x3000, 8)
	assert.Error(t, err)
}
