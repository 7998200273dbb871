// Package tools submits and tracks jobs on the EBI Job Dispatcher, the
// asynchronous REST service behind BLAST, ClustalW and the other sequence
// analysis tools.
//
// A Client is bound to one service name. Submitting a job writes a local
// lock record so a single user does not queue duplicate jobs against the
// same service; the record is re-validated against the remote status on
// every use, so a stale lock left by a crashed process clears itself.
//
//	c := tools.New("ncbiblast", tools.WithEmail("user@example.org"))
//	out, err := c.SubmitOne(url.Values{
//	    "program":  {"blastp"},
//	    "stype":    {"protein"},
//	    "database": {"uniprotkb_swissprot"},
//	    "sequence": {seq},
//	}, "out")
package tools

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/binfgo/ebi/http"
)

// DefaultBaseURL points at the public EBI Job Dispatcher REST API.
const DefaultBaseURL = "https://www.ebi.ac.uk/Tools/services/rest/"

// Job statuses reported by the Job Dispatcher. Only RUNNING is treated as
// non-terminal; any other string ends the polling loop.
const (
	StatusRunning  = "RUNNING"
	StatusFinished = "FINISHED"
	StatusError    = "ERROR"
	StatusFailure  = "FAILURE"
	StatusNotFound = "NOT_FOUND"
)

const (
	defaultEmail        = "anon@example.org"
	defaultPollInterval = 2 * time.Second
)

// Client drives one job at a time against a named Job Dispatcher service.
type Client struct {
	service      string
	baseURL      string
	email        string
	pollInterval time.Duration
	pollDeadline time.Duration
	locks        LockStore
	logger       *slog.Logger

	jobID string
	sleep func(time.Duration)
}

// New returns a client bound to the given service, e.g. "ncbiblast" or
// "clustalo". Lock records default to <service>.lock files in the current
// directory.
func New(service string, opts ...Option) *Client {
	c := &Client{
		service:      service,
		baseURL:      DefaultBaseURL,
		email:        defaultEmail,
		pollInterval: defaultPollInterval,
		locks:        NewFileLockStore("."),
		logger:       slog.Default(),
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// JobID returns the identifier of the current job, or the empty string if
// no job was submitted or restored from a lock record yet.
func (c *Client) JobID() string {
	return c.jobID
}

// IsLocked reports whether a job is already running against this client's
// service. A lock record whose job the service no longer reports as RUNNING
// is stale; it is removed and false is returned. When the record is live,
// the recorded job id becomes the client's current job.
func (c *Client) IsLocked() (bool, error) {
	jobID, ok, err := c.locks.Read(c.service)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	status, err := c.Status(jobID)
	if err != nil {
		return false, fmt.Errorf("check locked job %s: %w", jobID, err)
	}
	if status == StatusRunning {
		c.jobID = jobID
		return true, nil
	}

	if err := c.locks.Remove(c.service); err != nil {
		return false, err
	}
	return false, nil
}

// Run submits a job with the given form parameters and returns the job id
// assigned by the service. The multi-valued database parameter is appended
// as repeated key=value pairs after the encoded body; the Job Dispatcher
// expects one occurrence per database rather than a single encoded value.
//
// The lock record is written after the submission succeeds. The two steps
// are not atomic: a crash in between leaves the remote job tracked only by
// the service, and the next IsLocked reconciles local state against it.
func (c *Client) Run(params url.Values) (string, error) {
	if c.service == "" {
		return "", ErrNoService
	}

	locked, err := c.IsLocked()
	if err != nil {
		return "", err
	}
	if locked {
		return "", &AlreadyRunningError{
			Service:   c.service,
			JobID:     c.jobID,
			StatusURL: c.baseURL + c.service + "/status/" + c.jobID,
		}
	}

	form := url.Values{}
	var databases strings.Builder
	for key, values := range params {
		if key == "database" {
			for _, db := range values {
				databases.WriteString("&database=" + db)
			}
			continue
		}
		for _, v := range values {
			form.Add(key, v)
		}
	}

	raw, err := http.PostForm(c.baseURL+c.service+"/run/", form, databases.String())
	if err != nil {
		return "", fmt.Errorf("submit %s job: %w", c.service, err)
	}

	c.jobID = strings.TrimSpace(string(raw))
	if err := c.locks.Write(c.service, c.jobID); err != nil {
		return "", err
	}

	c.logger.Debug("job submitted", "service", c.service, "job_id", c.jobID)

	return c.jobID, nil
}

// Status returns the raw status string for the given job, or for the
// current job when jobID is empty. No interpretation is done here; callers
// decide which statuses are terminal.
func (c *Client) Status(jobID string) (string, error) {
	if jobID == "" {
		jobID = c.jobID
	}
	raw, err := http.Get(c.baseURL + c.service + "/status/" + jobID)
	if err != nil {
		return "", fmt.Errorf("status of job %s: %w", jobID, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// ResultTypes returns the raw enumeration of result types available for
// the current job. Only meaningful once the job is finished; the body
// format is owned by the provider and not interpreted here.
func (c *Client) ResultTypes() (string, error) {
	raw, err := http.Get(c.baseURL + c.service + "/resulttypes/" + c.jobID)
	if err != nil {
		return "", fmt.Errorf("result types of job %s: %w", c.jobID, err)
	}
	return string(raw), nil
}

// Result retrieves the content of one named result type for the current job.
//
// When the call fails at the transport layer, a single fallback fetch of
// the "error" result type is made to recover a diagnostic; its content is
// surfaced inside an ExecutionError, or ErrUnknownFailure if the fallback
// fails too. Successfully fetching the "error" type itself means the job
// produced error output, which is also surfaced as an ExecutionError.
func (c *Client) Result(resultType string) (string, error) {
	raw, err := http.Get(c.baseURL + c.service + "/result/" + c.jobID + "/" + resultType)
	if err != nil {
		if resultType == "error" {
			return "", ErrUnknownFailure
		}
		diagnostic, derr := http.Get(c.baseURL + c.service + "/result/" + c.jobID + "/error")
		if derr != nil {
			return "", ErrUnknownFailure
		}
		return "", &ExecutionError{JobID: c.jobID, Diagnostic: string(diagnostic)}
	}

	if resultType == "error" {
		return "", &ExecutionError{JobID: c.jobID, Diagnostic: string(raw)}
	}

	return string(raw), nil
}

// Submit runs a job end to end: attach the contact email, submit, poll the
// status at the configured interval until it leaves RUNNING, then fetch
// each requested result type. Results are returned in request order.
//
// A final status other than FINISHED yields an ExecutionError. The lock
// record is removed only on the success path; failed submissions leave it
// for the next IsLocked to reconcile.
func (c *Client) Submit(params url.Values, resultTypes ...string) ([]string, error) {
	if len(resultTypes) == 0 {
		return nil, fmt.Errorf("tools: no result types requested")
	}

	merged := url.Values{}
	for key, values := range params {
		merged[key] = values
	}
	merged.Set("email", c.email)

	if _, err := c.Run(merged); err != nil {
		return nil, err
	}
	c.logger.Info("job submitted", "service", c.service, "job_id", c.jobID)

	start := time.Now()
	var status string
	for {
		var err error
		status, err = c.Status("")
		if err != nil {
			return nil, err
		}
		c.logger.Debug("polled job", "job_id", c.jobID, "status", status)
		if status != StatusRunning {
			break
		}
		if c.pollDeadline > 0 && time.Since(start) > c.pollDeadline {
			return nil, ErrDeadlineExceeded
		}
		c.sleep(c.pollInterval)
	}

	if status != StatusFinished {
		return nil, &ExecutionError{JobID: c.jobID, Status: status}
	}
	c.logger.Info("job complete", "service", c.service, "job_id", c.jobID)

	if err := c.locks.Remove(c.service); err != nil {
		return nil, err
	}

	results := make([]string, 0, len(resultTypes))
	for _, resultType := range resultTypes {
		content, err := c.Result(resultType)
		if err != nil {
			return nil, err
		}
		results = append(results, content)
	}

	return results, nil
}

// SubmitOne is Submit for a single result type, returning its content
// directly.
func (c *Client) SubmitOne(params url.Values, resultType string) (string, error) {
	results, err := c.Submit(params, resultType)
	if err != nil {
		return "", err
	}
	return results[0], nil
}
