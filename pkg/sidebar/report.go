package sidebar

import "time"

// Report summarizes what a run did (or, for a dry run, would do).
type Report struct {
	TotalFiles int
	Created    int
	Updated    int
	Deleted    int
	Unchanged  int
	Failed     int
	Errors     map[string]error
	DryRun     bool
	StartTime  time.Time
	EndTime    time.Time
}

func NewReport() *Report {
	return &Report{
		Errors:    make(map[string]error),
		StartTime: time.Now(),
	}
}

func (r *Report) AddError(file string, err error) {
	r.Errors[file] = err
	r.Failed++
}

func (r *Report) Complete() {
	r.EndTime = time.Now()
}

func (r *Report) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Changed is the number of files created, updated or deleted.
func (r *Report) Changed() int {
	return r.Created + r.Updated + r.Deleted
}
