// Package synth renders batches of profile icons to disk.
//
// Every profile is isolated: a render or write failure is recorded in the
// report and the batch moves on to the next profile.
package synth

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"profilepop/internal/browser"
	"profilepop/internal/icon"
	"profilepop/internal/session"
	"profilepop/internal/store"
	"profilepop/internal/style"
)

// Job is one resolved icon to synthesize
type Job struct {
	Profile  browser.Profile
	Name     string // display name
	Stem     string // file name stem before sanitizing, Name when empty
	Spec     icon.Spec
	Problems []error // non-fatal resolution issues
}

// Jobs resolves the selected profiles of s. No keys selects all of them.
func Jobs(s *session.Session, r *style.Resolver, keys ...browser.Key) []Job {
	stems := make(map[browser.Key]string, len(s.Profiles))
	for i, stem := range Stems(s.Profiles) {
		stems[s.Profiles[i].Key()] = stem
	}

	var jobs []Job
	for _, req := range s.Requests(keys...) {
		spec, problems := r.Resolve(req)
		jobs = append(jobs, Job{
			Profile:  req.Profile,
			Name:     req.Profile.Name,
			Stem:     stems[req.Profile.Key()],
			Spec:     spec,
			Problems: problems,
		})
	}
	return jobs
}

// Generated describes one icon file written to disk
type Generated struct {
	Key       browser.Key
	Name      string
	Path      string
	Sizes     []int
	Skipped   []error
	CreatedAt time.Time
}

// Failure is a profile whose icon could not be produced
type Failure struct {
	Key  browser.Key
	Name string
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Name, f.Key, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Report is the outcome of a batch
type Report struct {
	Dir       string
	Generated []Generated
	Failures  []*Failure
}

// Err joins all failures, nil when every profile succeeded
func (r *Report) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Recorder persists the files of a finished batch
type Recorder interface {
	Record(entries []store.Entry) error
}

// Synthesizer writes icon files into OutDir
type Synthesizer struct {
	OutDir    string
	Sizes     []int
	Timestamp bool // append the batch time to file names
	ClearOld  bool // remove earlier icons of the batch's profiles first

	Recorder     Recorder                           // optional
	RefreshCache func() error                       // optional, run after a batch that wrote files
	Progress     func(done, total int, name string) // optional

	Now func() time.Time
}

func (s *Synthesizer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Synthesizer) sizes() []int {
	if len(s.Sizes) == 0 {
		return icon.DefaultSizes
	}
	return s.Sizes
}

// Run synthesizes every job. It never stops early.
func (s *Synthesizer) Run(jobs []Job) *Report {
	report := &Report{Dir: s.OutDir}
	if len(jobs) == 0 {
		return report
	}

	if err := os.MkdirAll(s.OutDir, 0755); err != nil {
		err = fmt.Errorf("%w: %v", icon.ErrOutputWrite, err)
		for _, j := range jobs {
			report.Failures = append(report.Failures, &Failure{Key: j.Profile.Key(), Name: j.Name, Err: err})
		}
		return report
	}

	created := s.now()
	var stamp time.Time
	if s.Timestamp {
		stamp = created
	}

	stems := uniqueStems(jobs)
	if s.ClearOld {
		s.clearOld(jobs, stems)
	}

	var entries []store.Entry
	for i, j := range jobs {
		key := j.Profile.Key()
		path := filepath.Join(s.OutDir, icon.FileName(stems[i], j.Profile.Kind.Tag(), stamp))

		skipped, err := s.synthesize(j, path)
		if err != nil {
			log.Printf("Icon for %s failed: %v", key, err)
			report.Failures = append(report.Failures, &Failure{Key: key, Name: j.Name, Err: err})
		} else {
			g := Generated{
				Key:       key,
				Name:      j.Name,
				Path:      path,
				Sizes:     append([]int(nil), s.sizes()...),
				Skipped:   skipped,
				CreatedAt: created,
			}
			report.Generated = append(report.Generated, g)
			entries = append(entries, store.Entry{Key: key, Name: j.Name, Path: path, Sizes: g.Sizes, CreatedAt: created})
		}

		if s.Progress != nil {
			s.Progress(i+1, len(jobs), j.Name)
		}
	}

	if s.Recorder != nil && len(entries) > 0 {
		if err := s.Recorder.Record(entries); err != nil {
			log.Printf("Failed to record icon history: %v", err)
		}
	}
	if s.RefreshCache != nil && len(report.Generated) > 0 {
		if err := s.RefreshCache(); err != nil {
			log.Printf("Could not refresh icon cache: %v", err)
		}
	}
	return report
}

// synthesize renders and writes one icon, returning the skipped stages
func (s *Synthesizer) synthesize(j Job, path string) ([]error, error) {
	res, err := icon.Render(j.Spec)
	if err != nil {
		return nil, err
	}
	skipped := append(append([]error(nil), j.Problems...), res.Skipped...)

	images, err := icon.Entries(res.Image, s.sizes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", icon.ErrRenderFailed, err)
	}
	if err := writeICO(path, images); err != nil {
		return nil, err
	}
	return skipped, nil
}
