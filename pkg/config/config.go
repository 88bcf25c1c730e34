// Package config provides mock suite loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/routemock/pkg/ports"
	"github.com/user/routemock/pkg/rules"
)

// Suite represents a declarative set of mock rules loaded from YAML.
type Suite struct {
	// Name identifies the suite in logs and summaries.
	Name string `yaml:"name"`

	// Rules are installed in file order; when several rules could match
	// one request the most recently registered wins.
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig is the YAML form of one mock rule.
type RuleConfig struct {
	ID     string `yaml:"id"`
	URL    string `yaml:"url"`
	Method string `yaml:"method"`

	// Response
	Status      int               `yaml:"status"`
	Headers     map[string]string `yaml:"headers"`
	Body        string            `yaml:"body"`
	JSON        interface{}       `yaml:"json"`
	ContentType string            `yaml:"content_type"`
	DelayMs     int               `yaml:"delay_ms"`

	// Matching
	CallBudget   int               `yaml:"call_budget"`
	HeaderEquals map[string]string `yaml:"header_equals"`
	BodyContains string            `yaml:"body_contains"`
}

// LoadFromFile loads a suite from a YAML file.
func LoadFromFile(path string) (Suite, error) {
	var suite Suite

	data, err := os.ReadFile(path)
	if err != nil {
		return suite, err
	}

	if err := yaml.Unmarshal(data, &suite); err != nil {
		return suite, fmt.Errorf("parse suite: %w", err)
	}

	if err := suite.Validate(); err != nil {
		return suite, err
	}

	return suite, nil
}

// Validate checks the suite for missing ids, duplicate ids, and invalid
// rules before anything is installed.
func (s Suite) Validate() error {
	seen := make(map[string]bool, len(s.Rules))
	for i, rc := range s.Rules {
		if rc.ID == "" {
			return fmt.Errorf("rule %d: id must not be empty", i)
		}
		if seen[rc.ID] {
			return fmt.Errorf("rule %d: duplicate id %q", i, rc.ID)
		}
		seen[rc.ID] = true
		if rc.URL == "" {
			return fmt.Errorf("rule %q: url must not be empty", rc.ID)
		}
		if rc.Body != "" && rc.JSON != nil {
			return fmt.Errorf("rule %q: body and json are mutually exclusive", rc.ID)
		}
		if _, rule, err := rc.ToRule(); err != nil {
			return err
		} else if err := rule.Validate(); err != nil {
			return fmt.Errorf("rule %q: %w", rc.ID, err)
		}
	}
	return nil
}

// ToRule converts the YAML form into a registrable rule.
func (rc RuleConfig) ToRule() (string, rules.MockRule, error) {
	var body rules.Body
	switch {
	case rc.JSON != nil:
		body = rules.JSONBody{Value: rc.JSON}
	case rc.Body != "":
		body = rules.RawBody{ContentType: rc.ContentType, Data: rc.Body}
	}

	rule := rules.MockRule{
		URLPattern: rc.URL,
		Method:     rc.Method,
		Predicate:  rc.predicate(),
		CallBudget: rc.CallBudget,
		Response: rules.ResponseSpec{
			StatusCode: rc.Status,
			Headers:    rc.Headers,
			Body:       body,
			DelayMs:    rc.DelayMs,
		},
	}
	return rc.ID, rule, nil
}

// predicate composes the declarative matching clauses. All clauses must
// hold for the rule to apply.
func (rc RuleConfig) predicate() rules.Predicate {
	var preds []rules.Predicate
	for name, value := range rc.HeaderEquals {
		preds = append(preds, rules.HeaderEquals(name, value))
	}
	if rc.BodyContains != "" {
		preds = append(preds, rules.BodyContains(rc.BodyContains))
	}
	if len(preds) == 0 {
		return nil
	}
	if len(preds) == 1 {
		return preds[0]
	}
	return func(req ports.InterceptedRequest) bool {
		for _, p := range preds {
			if !p(req) {
				return false
			}
		}
		return true
	}
}
