package go4c

import (
	"fmt"
	"io"
	"strings"
)

// Job is a single map to be colored as it travels through a JobStream.
type Job struct {
	Label    string
	Def      GraphDef
	Opts     ColorOpts
	Coloring Coloring     // set once colored
	Diag     *Diagnostics // set once colored
	Err      error        // set if the job's input was rejected
}

// ColorFunc colors the given Job in place.
type ColorFunc func(job *Job)

// StreamOpts configures the stages of a JobStream.
type StreamOpts struct {
	Workers int // max jobs colored at once; 0 denotes 1
}

type JobStream struct {
	Outlet chan *Job
}

func NewJobStream() *JobStream {
	stream := &JobStream{
		Outlet: make(chan *Job),
	}
	return stream
}

// StreamJobs returns a JobStream that emits the given jobs and then closes.
func StreamJobs(jobs ...*Job) *JobStream {
	next := NewJobStream()

	go func() {
		for _, job := range jobs {
			next.Outlet <- job
		}
		next.Close()
	}()

	return next
}

func (stream *JobStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *JobStream) Push(job *Job) {
	stream.Outlet <- job
}

// PullAll drains this stream and returns the jobs in the order they were emitted.
func (stream *JobStream) PullAll() []*Job {
	var jobs []*Job
	for job := range stream.Outlet {
		jobs = append(jobs, job)
	}
	return jobs
}

// Color colors each job with up to opts.Workers jobs in flight.
//
// Each job is colored by a single goroutine; jobs leave the returned stream in the order they arrived.
func (stream *JobStream) Color(colorFn ColorFunc, opts StreamOpts) *JobStream {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	next := &JobStream{
		Outlet: make(chan *Job, 1),
	}

	pending := make(chan chan *Job, workers)

	go func() {
		sem := make(chan struct{}, workers)
		for job := range stream.Outlet {
			done := make(chan *Job, 1)
			pending <- done
			sem <- struct{}{}
			go func(job *Job) {
				colorFn(job)
				<-sem
				done <- job
			}(job)
		}
		close(pending)
	}()

	go func() {
		for done := range pending {
			next.Outlet <- <-done
		}
		next.Close()
	}()

	return next
}

// Print writes a line for each job to out and passes the job along.  out is closed once the stream is exhausted.
func (stream *JobStream) Print(
	out io.WriteCloser,
	opts PrintOpts) *JobStream {

	next := &JobStream{
		Outlet: make(chan *Job, 1),
	}

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for job := range stream.Outlet {
			count++
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}
			fmt.Fprintf(&buf, "%06d,%s", count, job.Label)
			switch {
			case job.Err != nil:
				fmt.Fprintf(&buf, ",error: %v", job.Err)
			case job.Diag != nil:
				if opts.Summary {
					fmt.Fprintf(&buf, ",%v", job.Diag)
				}
				if opts.Coloring {
					for _, vc := range job.Coloring.Sorted() {
						fmt.Fprintf(&buf, ",%d=%d", vc.Vtx, vc.Color)
					}
				}
			}
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- job
		}
		out.Close()
		next.Close()
	}()

	return next
}
