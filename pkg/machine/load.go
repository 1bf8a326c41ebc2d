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

package machine

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// LoadImage reads a big-endian program image from reader and copies it
// into memory. The first word is the origin; every following word lands at
// consecutive addresses from there. Memory outside the image is left
// alone, so several images can be layered. A malformed image leaves memory
// untouched. The origin is returned so callers may start execution there.
func (mc *Machine) LoadImage(reader io.Reader) (uint16, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, errors.Wrap(err, "read image")
	}

	if len(data) < 4 {
		return 0, ErrImageTooShort
	}

	if len(data)%2 != 0 {
		return 0, ErrImageOddLength
	}

	origin := binary.BigEndian.Uint16(data)
	body := data[2:]

	if int(origin)+len(body)/2 > MemorySize {
		return 0, errors.Wrapf(
			ErrImageOverflow, "%d words at %#04x", len(body)/2, origin,
		)
	}

	for i := 0; i < len(body); i += 2 {
		mc.State.Memory[int(origin)+i/2] = binary.BigEndian.Uint16(body[i:])
	}

	return origin, nil
}

func (mc *Machine) LoadImageFile(path string) (uint16, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "load image")
	}

	defer file.Close()

	origin, err := mc.LoadImage(file)
	if err != nil {
		return 0, errors.Wrapf(err, "load image %s", path)
	}

	return origin, nil
}
