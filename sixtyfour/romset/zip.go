package romset

import (
	"archive/zip"
	"fmt"
)

func (s *Set) loadZIP(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || Classify(f.Name) == KindUnknown {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		err = s.add(f.Name, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
