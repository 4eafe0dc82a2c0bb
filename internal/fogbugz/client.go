package fogbugz

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"fogreport/internal/config"
)

const (
	cmdLogon         = "logon"
	cmdLogoff        = "logoff"
	cmdListPeople    = "listPeople"
	cmdListIntervals = "listIntervals"
	cmdSearch        = "search"
)

// searchCols is the column set requested with every bug search. Each
// returned case is fully parsed and cached whole.
const searchCols = "ixBug,sTitle,sProject,tags,dtResolved,hrsElapsedExtra,ixPersonResolvedBy"

// Client is an authenticated session against the FogBugz XML API. It is
// not safe for concurrent use; callers hold exactly one session per run.
type Client struct {
	endpoint string
	email    string
	password string
	token    string
	http     *http.Client
	log      zerolog.Logger
}

// NewClient builds a client from API configuration. Logon must be
// called before any other command.
func NewClient(cfg config.APIConfig, log zerolog.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &Client{
		endpoint: strings.TrimSpace(cfg.Endpoint),
		email:    cfg.Email,
		password: cfg.Password,
		http:     &http.Client{Timeout: timeout},
		log:      log,
	}
}

// Logon authenticates with the stored credentials and keeps the issued
// session token for subsequent commands.
func (c *Client) Logon() error {
	params := url.Values{}
	params.Set("email", c.email)
	params.Set("password", c.password)

	resp, err := c.call(cmdLogon, false, params)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return &AuthError{Message: "logon rejected", Err: err}
		}
		return err
	}
	if resp.Token == "" {
		return &AuthError{Message: "logon response carried no token"}
	}
	c.token = resp.Token
	c.log.Debug().Msg("logged on")
	return nil
}

// Logoff ends the session best-effort. A failure is logged and
// swallowed; the caller's completed work is not invalidated.
func (c *Client) Logoff() {
	if c.token == "" {
		return
	}
	if _, err := c.call(cmdLogoff, true, nil); err != nil {
		c.log.Warn().Err(err).Msg("logoff failed")
	}
	c.token = ""
}

// ListPeople fetches every person known to the remote service.
func (c *Client) ListPeople() ([]Person, error) {
	resp, err := c.invoke(cmdListPeople, nil)
	if err != nil {
		return nil, err
	}
	people := make([]Person, 0, len(resp.People))
	for _, p := range resp.People {
		people = append(people, Person{ID: p.ID, Name: p.Name, Email: p.Email})
	}
	return people, nil
}

// ListIntervals fetches logged time intervals for a person scope and a
// half-open [start, end) instant range. A malformed interval record
// fails the whole call.
func (c *Client) ListIntervals(person int, start, end time.Time) ([]Interval, error) {
	params := url.Values{}
	params.Set("ixPerson", strconv.Itoa(person))
	params.Set("dtStart", start.UTC().Format(time.RFC3339))
	params.Set("dtEnd", end.UTC().Format(time.RFC3339))

	resp, err := c.invoke(cmdListIntervals, params)
	if err != nil {
		return nil, err
	}
	intervals := make([]Interval, 0, len(resp.Intervals))
	for _, x := range resp.Intervals {
		iv, err := x.toInterval()
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// SearchBugs runs a query expression and returns fully parsed case
// records. A malformed case record fails the whole call.
func (c *Client) SearchBugs(query string) ([]Bug, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("cols", searchCols)

	resp, err := c.invoke(cmdSearch, params)
	if err != nil {
		return nil, err
	}
	bugs := make([]Bug, 0, len(resp.Cases))
	for _, x := range resp.Cases {
		b, err := x.toBug()
		if err != nil {
			return nil, err
		}
		bugs = append(bugs, b)
	}
	return bugs, nil
}

// BugURL returns the user-facing URL for a bug, derived from the API
// endpoint.
func (c *Client) BugURL(id int) string {
	base := c.endpoint
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[:i+1]
	}
	return fmt.Sprintf("%sdefault.asp?%d", base, id)
}

// invoke runs an authenticated command. On the well-known "not logged
// on" code it re-authenticates once with the original credentials and
// retries the same call exactly once; a second rejection is a fatal
// authentication error. Every other error propagates untouched.
func (c *Client) invoke(cmd string, params url.Values) (*envelope, error) {
	resp, err := c.call(cmd, true, params)
	if err == nil {
		return resp, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != CodeNotLoggedOn {
		return nil, err
	}

	c.log.Debug().Str("cmd", cmd).Msg("session expired, re-authenticating")
	if err := c.Logon(); err != nil {
		return nil, err
	}

	resp, err = c.call(cmd, true, params)
	if errors.As(err, &apiErr) && apiErr.Code == CodeNotLoggedOn {
		return nil, &AuthError{Message: "session rejected after re-authentication", Err: err}
	}
	return resp, err
}

// call performs one request/response exchange with no retry logic.
func (c *Client) call(cmd string, withToken bool, params url.Values) (*envelope, error) {
	if c.endpoint == "" {
		return nil, &TransportError{Cmd: cmd, Message: "empty endpoint"}
	}

	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("cmd", cmd)
	if withToken {
		q.Set("token", c.token)
	}

	u := c.endpoint + "?" + q.Encode()
	c.log.Debug().Str("cmd", cmd).Msg("remote call")

	resp, err := c.http.Get(u)
	if err != nil {
		return nil, &TransportError{Cmd: cmd, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, &TransportError{
			Cmd:     cmd,
			Message: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))),
		}
	}

	var env envelope
	if err := xml.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &TransportError{Cmd: cmd, Message: "undecodable response", Err: err}
	}
	if env.Error != nil {
		return nil, &APIError{
			Cmd:     cmd,
			Code:    Code(env.Error.Code),
			Message: strings.TrimSpace(env.Error.Message),
		}
	}
	return &env, nil
}
