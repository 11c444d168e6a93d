// Package executor 远程代码执行服务（Piston）的客户端
package executor

import (
	"bytes"
	"codewithme_backend/internal/config"
	"codewithme_backend/pkg/monitoring"
	"codewithme_backend/pkg/tracing"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Result 归一化后的执行结果
type Result struct {
	Stdout       string `json:"stdout"`
	Stderr       string `json:"stderr"`
	CompileError string `json:"compileError"`
}

// ErrorOutput 编译错误优先，其次是运行时 stderr；都为空表示正常结束
func (r *Result) ErrorOutput() string {
	if r.CompileError != "" {
		return r.CompileError
	}
	return r.Stderr
}

type file struct {
	Content string `json:"content"`
}

type executeRequest struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Files    []file `json:"files"`
	Stdin    string `json:"stdin"`
}

type stage struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

type executeResponse struct {
	Run     *stage `json:"run"`
	Compile *stage `json:"compile"`
	Message string `json:"message"`
}

// Client 线程安全，配置可在运行时通过 Apply 替换
type Client struct {
	mu         sync.RWMutex
	url        string
	version    string
	languages  map[string]bool
	httpClient *http.Client
}

func NewClient(cfg config.ExecutorConfig) *Client {
	c := &Client{}
	c.Apply(cfg)
	return c
}

// Apply 热更新执行服务地址、超时与支持的语言
func (c *Client) Apply(cfg config.ExecutorConfig) {
	languages := make(map[string]bool, len(cfg.Languages))
	for _, l := range cfg.Languages {
		languages[strings.ToLower(strings.TrimSpace(l))] = true
	}
	version := cfg.Version
	if version == "" {
		version = "*"
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.url = cfg.URL
	c.version = version
	c.languages = languages
	c.httpClient = &http.Client{Timeout: cfg.Timeout()}
}

func (c *Client) Supports(language string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.languages[strings.ToLower(language)]
}

func (c *Client) snapshot() (string, string, *http.Client) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.url, c.version, c.httpClient
}

// SanitizeCode 编辑器粘贴的不间断空格会导致编译失败
func SanitizeCode(code string) string {
	return strings.ReplaceAll(code, "\u00a0", " ")
}

// Execute 执行一次代码。网络错误或服务端非 2xx 时返回 error，由调用方决定如何处理
func (c *Client) Execute(ctx context.Context, language, code, stdin string) (res *Result, err error) {
	url, version, httpClient := c.snapshot()

	ctx, span := tracing.StartSpan(ctx, "executor.execute", attribute.String("language", language))
	start := time.Now()
	defer func() {
		monitoring.ExecutorDuration.WithLabelValues(language).Observe(time.Since(start).Seconds())
		monitoring.ExecutorCalls.WithLabelValues(language, outcome(res, err)).Inc()
		tracing.EndSpan(span, err)
	}()

	body, err := json.Marshal(executeRequest{
		Language: language,
		Version:  version,
		Files:    []file{{Content: SanitizeCode(code)}},
		Stdin:    stdin,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal executor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build executor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call executor: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read executor response: %w", err)
	}

	var parsed executeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		if resp.StatusCode/100 != 2 {
			return nil, fmt.Errorf("executor returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode executor response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("executor returned status %d: %s", resp.StatusCode, parsed.Message)
	}
	if parsed.Run == nil && parsed.Compile == nil {
		return nil, fmt.Errorf("executor response has no run stage: %s", parsed.Message)
	}

	res = &Result{}
	if parsed.Compile != nil {
		res.CompileError = parsed.Compile.Stderr
	}
	if parsed.Run != nil {
		res.Stdout = parsed.Run.Stdout
		res.Stderr = parsed.Run.Stderr
	}
	return res, nil
}

func outcome(res *Result, err error) string {
	switch {
	case err != nil:
		return "failure"
	case res.CompileError != "":
		return "compile_error"
	case res.Stderr != "":
		return "runtime_error"
	}
	return "ok"
}
