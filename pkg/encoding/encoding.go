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

package encoding

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidHex = errors.New("Invalid hex string")

// Decodes a hexidecimal string in the formats: 0xFFFF, xFFFF, 0xFF, xFF
func DecodeHex(s string) (uint16, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i != 1 || s[0] != '0' {
		return 0, ErrInvalidHex
	}

	result, err := strconv.ParseUint(s[2:], 16, 16)

	if err != nil {
		return 0, errors.Wrapf(err, "decode hex %q", s)
	}

	return uint16(result), nil
}

// Decodes a base-10 string in the formats: #123, 123, #-5
func DecodeInt(s string) (int16, error) {
	s = strings.TrimPrefix(s, "#")

	result, err := strconv.ParseInt(s, 10, 16)

	if err != nil {
		return 0, errors.Wrapf(err, "decode int %q", s)
	}

	return int16(result), nil
}

func mask(bitcount uint16) uint16 {
	return uint16((uint32(1) << bitcount) - 1)
}

// SignExtend widens the low bitcount bits of value to 16 bits, replicating
// bit (bitcount-1) into every higher bit. Bits above bitcount are ignored.
func SignExtend(value uint16, bitcount uint16) uint16 {
	value &= mask(bitcount)

	if (value>>(bitcount-1))&0x1 == 1 {
		value |= ^mask(bitcount)
	}

	return value
}

// ZeroExtend widens the low bitcount bits of value to 16 bits, clearing
// every higher bit.
func ZeroExtend(value uint16, bitcount uint16) uint16 {
	return value & mask(bitcount)
}
