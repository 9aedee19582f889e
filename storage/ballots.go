package storage

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sajad-git/election/logging"
	"github.com/xuri/excelize/v2"
)

// ballotHeader is the fixed four-column schema of every ballot table, in
// the order the exported workbook carries them.
var ballotHeader = []string{"کد ملی", "نام", "نام خانوادگی", "رای داده شده به"}

type BallotStorage interface {
	LoadOrCreate(fileID string) ([]*Ballot, error)
	HasVoted(fileID string, nationalCode int64) (bool, error)
	Append(fileID string, ballot *Ballot) error
	ListFiles() ([]string, error)
	ReadFile(fileID string) ([]byte, error)
	ExportAll() ([]byte, error)
}

// ExcelBallotStorage keeps one xlsx workbook per ballot table under Dir.
// A single mutex serializes every check-then-append-then-flush sequence,
// so no two ballots with the same national code can land in one table.
type ExcelBallotStorage struct {
	Dir string
	mu  sync.Mutex
}

func NewExcelBallotStorage(dir string) (*ExcelBallotStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logging.Log.Errorf("BALLOT: failed to create votes dir %s: %v", dir, err)
		return nil, err
	}
	return &ExcelBallotStorage{Dir: dir}, nil
}

func (s *ExcelBallotStorage) path(fileID string) string {
	return filepath.Join(s.Dir, fileID)
}

// LoadOrCreate returns the ballots of the table named fileID, creating an
// empty table (header row only) on disk when none exists yet.
func (s *ExcelBallotStorage) LoadOrCreate(fileID string) ([]*Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrCreate(fileID)
}

func (s *ExcelBallotStorage) loadOrCreate(fileID string) ([]*Ballot, error) {
	if _, err := os.Stat(s.path(fileID)); errors.Is(err, os.ErrNotExist) {
		if err := s.save(fileID, nil); err != nil {
			return nil, err
		}
		logging.Log.Infof("BALLOT: created empty table %s", fileID)
		return []*Ballot{}, nil
	}

	f, err := excelize.OpenFile(s.path(fileID))
	if err != nil {
		logging.Log.Errorf("BALLOT: failed to open table %s: %v", fileID, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		logging.Log.Errorf("BALLOT: failed to read rows of %s: %v", fileID, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}

	ballots := make([]*Ballot, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		if len(row) == 0 {
			continue
		}
		if len(row) < len(ballotHeader) {
			return nil, fmt.Errorf("%w: row %d of %s has %d columns", ErrStoreCorrupt, i+1, fileID, len(row))
		}
		code, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d of %s has non-numeric national code", ErrStoreCorrupt, i+1, fileID)
		}
		ballots = append(ballots, &Ballot{
			NationalCode: code,
			FirstName:    row[1],
			LastName:     row[2],
			Choice:       row[3],
		})
	}
	return ballots, nil
}

// HasVoted reports whether nationalCode already has a ballot in the table.
func (s *ExcelBallotStorage) HasVoted(fileID string, nationalCode int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ballots, err := s.loadOrCreate(fileID)
	if err != nil {
		return false, err
	}
	return hasVoted(ballots, nationalCode), nil
}

func hasVoted(ballots []*Ballot, nationalCode int64) bool {
	for _, b := range ballots {
		if b.NationalCode == nationalCode {
			return true
		}
	}
	return false
}

// Append adds the ballot and rewrites the whole table synchronously. The
// uniqueness check runs under the same lock as the flush, so a duplicate
// national code is rejected with ErrAlreadyVoted even when two sessions
// race past their own earlier checks.
func (s *ExcelBallotStorage) Append(fileID string, ballot *Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ballots, err := s.loadOrCreate(fileID)
	if err != nil {
		return err
	}
	if hasVoted(ballots, ballot.NationalCode) {
		return ErrAlreadyVoted
	}

	ballots = append(ballots, ballot)
	if err := s.save(fileID, ballots); err != nil {
		return err
	}
	logging.Log.Infof("BALLOT: appended ballot to %s (%d total)", fileID, len(ballots))
	return nil
}

func (s *ExcelBallotStorage) save(fileID string, ballots []*Ballot) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range ballotHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for i, b := range ballots {
		row := i + 2
		values := []interface{}{b.NationalCode, b.FirstName, b.LastName, b.Choice}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(s.path(fileID)); err != nil {
		logging.Log.Errorf("BALLOT: failed to persist table %s: %v", fileID, err)
		return err
	}
	return nil
}

// ListFiles names every persisted ballot table, sorted.
func (s *ExcelBallotStorage) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		logging.Log.Errorf("BALLOT: failed to list votes dir %s: %v", s.Dir, err)
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xlsx") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// ReadFile returns the raw workbook bytes for a single-file download.
func (s *ExcelBallotStorage) ReadFile(fileID string) ([]byte, error) {
	data, err := os.ReadFile(s.path(fileID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		logging.Log.Errorf("BALLOT: failed to read table %s: %v", fileID, err)
		return nil, err
	}
	return data, nil
}

// ExportAll bundles every persisted table into one zip archive.
func (s *ExcelBallotStorage) ExportAll() ([]byte, error) {
	files, err := s.ListFiles()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range files {
		data, err := s.ReadFile(name)
		if err != nil {
			zw.Close()
			return nil, err
		}
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
