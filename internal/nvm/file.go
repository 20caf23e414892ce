package nvm

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// recordSize is the on-disk width of one record. Records are stored as
// little-endian float32, matching the EEPROM layout of the embedded
// targets this store emulates; values survive with float32 precision.
const recordSize = 4

// FileStore is a file-backed Store with fixed-width records, emulating
// an EEPROM parameter bank.
type FileStore struct {
	f        *os.File
	capacity int
}

// OpenFile opens (or creates zero-filled) a record file with the given
// capacity.
func OpenFile(path string, capacity int) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open nvm file: %w", err)
	}

	size := int64(capacity * recordSize)
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat nvm file: %w", err)
	}
	if info.Size() < size {
		if err := f.Truncate(size); err != nil {
			f.Close()
			return nil, fmt.Errorf("size nvm file: %w", err)
		}
	}

	return &FileStore{f: f, capacity: capacity}, nil
}

// Read returns the value of record index.
func (s *FileStore) Read(index int) (float64, error) {
	if index < 0 || index >= s.capacity {
		return 0, ErrRecordRange
	}
	var buf [recordSize]byte
	if _, err := s.f.ReadAt(buf[:], int64(index*recordSize)); err != nil {
		return 0, fmt.Errorf("read nvm record %d: %w", index, err)
	}
	bits := binary.LittleEndian.Uint32(buf[:])
	return float64(math.Float32frombits(bits)), nil
}

// Write stores value at record index.
func (s *FileStore) Write(index int, value float64) error {
	if index < 0 || index >= s.capacity {
		return ErrRecordRange
	}
	var buf [recordSize]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(value)))
	if _, err := s.f.WriteAt(buf[:], int64(index*recordSize)); err != nil {
		return fmt.Errorf("write nvm record %d: %w", index, err)
	}
	return nil
}

// Close closes the underlying file.
func (s *FileStore) Close() error {
	return s.f.Close()
}
