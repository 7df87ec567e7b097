package seamcarve

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/esimov/seamcarve/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Ops holds the source and destination of an execution.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the relevant information about the resizing process and the generated image.
type result struct {
	id   string
	path string
	dst  string
	size int64
	err  error
}

// Execute resizes the source image, or every supported image found under the
// source directory, and writes the results to the destination.
// The source can be a local file, a directory, an URL or the pipe name for stdin.
func (p *Processor) Execute(op *Ops) error {
	var (
		fs  os.FileInfo
		err error
	)
	log := p.logger()
	src := op.Src

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(src) {
		tmp, err := utils.DownloadImage(src)
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		defer os.Remove(tmp.Name())
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("could not close the downloaded image: %w", err)
		}
		log.Debug("source image downloaded", zap.String("url", src), zap.String("file", tmp.Name()))
		src = tmp.Name()
	}

	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		err = p.executeDir(op, src)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0 || src == op.PipeName:
		ext := filepath.Ext(op.Dst)
		if !isValidExtension(ext) && op.Dst != op.PipeName {
			return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
		}

		if p.Spinner == nil && op.Dst != op.PipeName {
			msg := fmt.Sprintf("%s %s",
				utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
				utils.DecorateText("⇢ resizing image (be patient, it may take a while)...", utils.DefaultMessage),
			)
			p.Spinner = utils.NewSpinner(msg, time.Millisecond*80, true)
		}
		res := op.process(p, uuid.NewString(), src, op.Dst)
		op.printOpStatus(res)
		err = res.err
	default:
		return fmt.Errorf("unsupported source file mode %v", mode)
	}

	if err != nil {
		return err
	}
	log.Debug("execution finished", zap.Duration("elapsed", time.Since(now)))
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage),
	)
	return nil
}

// executeDir processes recursively the image files from the src directory concurrently.
func (p *Processor) executeDir(op *Ops, src string) error {
	var wg sync.WaitGroup

	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}

	workers := workerCount(op.Workers)
	p.logger().Info("processing directory",
		zap.String("src", src),
		zap.String("dst", op.Dst),
		zap.Int("workers", workers),
	)

	// The workers share a copy of the processor without the progress indicator.
	proc := *p
	proc.Spinner = nil

	ch := make(chan result)
	done := make(chan struct{})
	defer close(done)

	paths, errc := walkDir(done, src, op.Dst)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(&proc, src, op.Dst, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var errs []error
	for res := range ch {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.path, res.err))
		}
		op.printOpStatus(res)
	}

	if err := <-errc; err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// consumer reads the path names from the paths channel and calls the resizing processor against the source image.
func (op *Ops) consumer(
	p *Processor,
	root, dest string,
	res chan<- result,
	done <-chan struct{},
	paths <-chan string,
) {
	for src := range paths {
		var r result
		dst, err := destPath(root, dest, src)
		if err != nil {
			r = result{id: uuid.NewString(), path: src, err: err}
		} else {
			r = op.process(p, uuid.NewString(), src, dst)
		}

		select {
		case <-done:
			return
		case res <- r:
		}
	}
}

// destPath mirrors the location of src below root into the dest directory,
// creating the intermediate directories.
func destPath(root, dest, src string) (string, error) {
	rel, err := filepath.Rel(root, src)
	if err != nil {
		return "", fmt.Errorf("unable to resolve the destination path: %w", err)
	}
	dst := filepath.Join(dest, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("unable to create the destination directory: %w", err)
	}
	return dst, nil
}

// workerCount limits the concurrently running workers to [1, maxWorkers].
// A non-positive value selects the number of CPUs.
func workerCount(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return utils.Clamp(n, 1, maxWorkers)
}

// process calls the resizer method over the source image.
// The destination file is removed in case of an error.
func (op *Ops) process(p *Processor, id, in, out string) result {
	res := result{id: id, path: in, dst: out}
	log := p.logger().With(zap.String("job", id))

	spinner := p.Spinner
	if spinner != nil {
		spinner.Start()
	}
	stop := func(msg string) {
		if spinner != nil {
			spinner.StopMsg = msg
			spinner.Stop()
		}
	}

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		stop(errorMsg())
		res.err = err
		return res
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Warn("could not close the source file", zap.Error(err))
			}
		}
	}()

	log.Debug("processing image", zap.String("src", in), zap.String("dst", out))
	err = p.Process(src, dst)

	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close the destination file: %w", cerr)
		}
		if err != nil {
			// remove the generated image file in case of an error
			os.Remove(f.Name())
		} else if fi, serr := os.Stat(f.Name()); serr == nil {
			res.size = fi.Size()
		}
	}

	if err != nil {
		stop(errorMsg())
		log.Error("resizing image failed", zap.String("src", in), zap.Error(err))
		res.err = err
		return res
	}

	stop(fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been resized successfully ✔", utils.SuccessMessage),
	))
	log.Info("image resized",
		zap.String("src", in),
		zap.String("dst", out),
		zap.String("size", humanize.Bytes(uint64(res.size))),
	)
	return res
}

func errorMsg() string {
	return fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
		utils.DecorateText("resizing image failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			closeFile(src)
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			closeFile(src)
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

func closeFile(r io.Reader) {
	if f, ok := r.(*os.File); ok && f != os.Stdin {
		f.Close()
	}
}

// printOpStatus displays the relevant information about the image resizing process.
func (op *Ops) printOpStatus(res result) {
	if res.err != nil {
		fmt.Fprintf(os.Stderr, "\n%s %s\n",
			utils.DecorateText("Error resizing the image:", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("%s\n\tReason: %v", filepath.Base(res.path), res.err), utils.DefaultMessage),
		)
		return
	}
	if res.dst != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s (%s)\n",
			utils.DecorateText(res.dst, utils.SuccessMessage),
			humanize.Bytes(uint64(res.size)),
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported image file to a new channel.
// The skip directory, usually the destination, is not visited.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan struct{},
	src, skip string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	root := filepath.Clean(src)
	skip = filepath.Clean(skip)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if f.IsDir() {
				if path != root && filepath.Clean(path) == skip {
					return filepath.SkipDir
				}
				return nil
			}
			if !f.Mode().IsRegular() || !isValidExtension(filepath.Ext(f.Name())) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
