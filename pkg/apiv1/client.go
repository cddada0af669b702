package apiv1

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dukahub/dukaweb/pkg/clog"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Response is the envelope every backend endpoint replies with.
type Response struct {
	Success bool            `json:"success"`
	Message json.RawMessage `json:"message"`
}

// MessageText returns message as text whether the backend sent a JSON string or something else.
func (r Response) MessageText() string {
	var s string
	if err := json.Unmarshal(r.Message, &s); err == nil {
		return s
	}

	return string(r.Message)
}

type Client struct {
	client *resty.Client
}

// NewClient creates a client for the backend rooted at baseURL, e.g. http://host/api/v1.
// token is sent as a bearer token when not empty.
func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	if token != "" {
		c.SetAuthToken(token)
	}

	return &Client{client: c}
}

func (c *Client) ListAll(ctx context.Context, q Query) ([]Record, error) {
	var records []Record
	if err := c.get(ctx, "list-all", q, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (c *Client) Read(ctx context.Context, q Query) (Record, error) {
	var record Record
	if err := c.get(ctx, "read", q, &record); err != nil {
		return nil, err
	}

	return record, nil
}

func (c *Client) CountAll(ctx context.Context, q Query) (int, error) {
	var count json.Number
	if err := c.get(ctx, "count-all-collection", q, &count); err != nil {
		return 0, err
	}

	n, err := count.Int64()
	if err != nil {
		return 0, errors.Wrapf(err, "count-all-collection returned %q", count.String())
	}

	return int(n), nil
}

func (c *Client) Create(ctx context.Context, schema string, doc Record) (Record, error) {
	body := map[string]any{
		"schema":       schema,
		"documentData": doc,
	}

	return c.send(ctx, http.MethodPost, "create", body)
}

func (c *Client) Update(ctx context.Context, schema string, condition Condition, doc Record) (Record, error) {
	body := map[string]any{
		"schema":          schema,
		"condition":       condition,
		"newDocumentData": doc,
	}

	return c.send(ctx, http.MethodPut, "update", body)
}

func (c *Client) Delete(ctx context.Context, schema string, condition Condition) error {
	body := map[string]any{
		"schema":    schema,
		"condition": condition,
	}

	_, err := c.send(ctx, http.MethodDelete, "delete", body)
	return err
}

func (c *Client) get(ctx context.Context, path string, q Query, result any) error {
	params, err := q.encode()
	if err != nil {
		return err
	}

	clog.UsingCtx("apiv1").WithField("schema", q.Schema).Debugf("GET %s", path)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return errors.Wrapf(err, "GET %s failed", path)
	}

	envelope, err := toEnvelope(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(envelope.Message, result); err != nil {
		return errors.Wrapf(err, "unable to decode %s message for schema %s", path, q.Schema)
	}

	return nil
}

// send issues a mutating request. A message that is not a JSON object (e.g. "deleted") yields a nil Record.
func (c *Client) send(ctx context.Context, method, path string, body map[string]any) (Record, error) {
	clog.UsingCtx("apiv1").WithField("schema", body["schema"]).Debugf("%s %s", method, path)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Execute(method, path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", method, path)
	}

	envelope, err := toEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal(envelope.Message, &record); err != nil {
		return nil, nil
	}

	return record, nil
}

func toEnvelope(resp *resty.Response) (*Response, error) {
	if resp.IsError() {
		return nil, ToErrorFromResponse(resp)
	}

	var envelope Response
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, &Error{Status: resp.StatusCode(), Message: "unable to parse backend response: " + err.Error()}
	}

	if !envelope.Success {
		return nil, &Error{Status: resp.StatusCode(), Message: envelope.MessageText()}
	}

	return &envelope, nil
}

func (q Query) encode() (map[string]string, error) {
	params := map[string]string{"schema": q.Schema}

	for name, value := range map[string]any{"condition": q.Condition, "select": q.Select, "sort": q.Sort} {
		if isEmptyValue(value) {
			continue
		}

		b, err := json.Marshal(value)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to encode %s for schema %s", name, q.Schema)
		}
		params[name] = string(b)
	}

	// An explicit empty projection means "all fields" and is sent as {}.
	if q.Select != nil && len(q.Select) == 0 {
		params["select"] = "{}"
	}

	if q.JoinForeignKeys {
		params["joinForeignKeys"] = strconv.FormatBool(true)
	}

	return params, nil
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case Condition:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return v == nil
	}
}
