package colorgrid

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	textExt  = ".txt"
	imageExt = ".png"
)

func (cg *ColorGrid) findFiles(ctx context.Context, base, ext string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || filepath.Ext(file) != ext {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (cg *ColorGrid) worker(ctx context.Context, in <-chan string, fn func(string) error) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := fn(file); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func (cg *ColorGrid) encodeText(file string) error {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}
	text := strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")

	out := strings.TrimSuffix(file, textExt) + imageExt
	if err := cg.EncodeFile(text, out); err != nil {
		return err
	}
	cg.logger.Info("Encoded", "file", file, "image", out)

	return nil
}

func (cg *ColorGrid) decodeImage(file string) error {
	out := strings.TrimSuffix(file, imageExt) + textExt
	if _, err := os.Stat(out); err == nil {
		cg.logger.Info("Skipping, text already exists", "image", file, "file", out)
		return nil
	}

	text, err := cg.DecodeFile(file)
	if err != nil {
		return err
	}

	if err := ioutil.WriteFile(out, []byte(text+"\n"), 0644); err != nil {
		return err
	}
	cg.logger.Info("Decoded", "image", file, "file", out)

	return nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (cg *ColorGrid) run(path, ext string, fn func(string) error) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := cg.findFiles(ctx, dir, ext)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	workers := cg.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		errc, err := cg.worker(ctx, files, fn)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}

// EncodeDir encodes every .txt file under path into a .png image alongside
// it. A single trailing newline is not encoded.
func (cg *ColorGrid) EncodeDir(path string) error {
	return cg.run(path, textExt, cg.encodeText)
}

// DecodeDir decodes every .png image under path into a .txt file alongside
// it. Images that already have a text file are skipped.
func (cg *ColorGrid) DecodeDir(path string) error {
	return cg.run(path, imageExt, cg.decodeImage)
}
