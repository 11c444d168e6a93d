// Package seed 解析示例挑战数据文件
package seed

import (
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/service"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Case struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	IsExample bool   `yaml:"isExample"`
}

type Challenge struct {
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	Constraints      string `yaml:"constraints"`
	Difficulty       string `yaml:"difficulty"`
	Score            int    `yaml:"score"`
	Tags             string `yaml:"tags"`
	Solution         string `yaml:"solution"`
	SolutionLanguage string `yaml:"solutionLanguage"`
	TestCases        []Case `yaml:"testCases"`
}

type Author struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
}

type File struct {
	Author     Author      `yaml:"author"`
	Challenges []Challenge `yaml:"challenges"`
}

func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode 未知字段视为错误
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if file.Author.Email == "" {
		return nil, fmt.Errorf("seed file: author email is required")
	}
	for i, c := range file.Challenges {
		if c.Title == "" {
			return nil, fmt.Errorf("seed file: challenge #%d has no title", i+1)
		}
	}
	return &file, nil
}

// Request 转换为创建请求，规范化交给 ChallengeService.Create
func (c Challenge) Request() (service.CreateChallengeRequest, error) {
	difficulty := model.Difficulty(c.Difficulty)
	if !difficulty.Valid() {
		return service.CreateChallengeRequest{}, fmt.Errorf("invalid difficulty %q", c.Difficulty)
	}
	if c.Score < model.MinChallengeScore || c.Score > model.MaxChallengeScore {
		return service.CreateChallengeRequest{}, fmt.Errorf("score %d out of range", c.Score)
	}
	if len(c.TestCases) == 0 {
		return service.CreateChallengeRequest{}, fmt.Errorf("no test cases")
	}

	cases := make([]service.TestCaseRequest, 0, len(c.TestCases))
	for i, tc := range c.TestCases {
		if strings.TrimSpace(tc.Input) == "" || strings.TrimSpace(tc.Output) == "" {
			return service.CreateChallengeRequest{}, fmt.Errorf("test case #%d needs input and output", i+1)
		}
		cases = append(cases, service.TestCaseRequest{Input: tc.Input, Output: tc.Output, IsExample: tc.IsExample})
	}
	return service.CreateChallengeRequest{
		Title:            c.Title,
		Description:      c.Description,
		Constraints:      c.Constraints,
		Difficulty:       difficulty,
		Score:            c.Score,
		Tags:             c.Tags,
		Solution:         c.Solution,
		SolutionLanguage: c.SolutionLanguage,
		TestCases:        cases,
	}, nil
}
