// Copyright 2024 The Hierconfig Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workflow implements component I: the façade a caller drives a
// full remediation through — running config in, generated config in,
// remediation and rollback commands out — wrapping packages diff and
// emit the way original_source/hier_config/workflow_remediation.py wraps
// base.py's config_to_get_to. Scenarios S1-S6 (spec.md §8) and invariant
// #4 (a rollback applied after its remediation reproduces the running
// config) are all driven through WorkflowRemediation.
package workflow

import (
	"errors"

	"github.com/netconfd/hierconfig/diff"
	"github.com/netconfd/hierconfig/emit"
	"github.com/netconfd/hierconfig/rules"
	"github.com/netconfd/hierconfig/tree"
)

// ErrMismatchedDriver is returned when running and generated were parsed
// with different drivers; a remediation only makes sense between two
// configs of the same platform.
var ErrMismatchedDriver = errors.New("workflow: running and generated configs use different drivers")

// WorkflowRemediation computes, caches, and renders the commands that
// take a device from its running config to a generated target config, and
// the commands that would undo that change.
type WorkflowRemediation struct {
	running   *tree.Node
	generated *tree.Node

	remediation *tree.Node
	rollback    *tree.Node
}

// New builds a WorkflowRemediation from a parsed running config and a
// parsed generated (target) config. Both must be bound to the same
// driver platform.
func New(running, generated *tree.Node) (*WorkflowRemediation, error) {
	if running.Driver().Platform() != generated.Driver().Platform() {
		return nil, ErrMismatchedDriver
	}
	return &WorkflowRemediation{running: running, generated: generated}, nil
}

// RemediationConfig returns (computing and caching on first call) the
// commands to run against running to reach generated.
func (w *WorkflowRemediation) RemediationConfig() *tree.Node {
	if w.remediation == nil {
		w.remediation = diff.ConfigToGetTo(w.running, w.generated)
		diff.SetOrderWeight(w.remediation)
	}
	return w.remediation
}

// RollbackConfig returns (computing and caching on first call) the
// commands that undo RemediationConfig: the diff in the opposite
// direction, from generated back to running (invariant #4: applying
// RemediationConfig then RollbackConfig reproduces running).
func (w *WorkflowRemediation) RollbackConfig() *tree.Node {
	if w.rollback == nil {
		w.rollback = diff.ConfigToGetTo(w.generated, w.running)
		diff.SetOrderWeight(w.rollback)
	}
	return w.rollback
}

// ApplyRemediationTagRules tags every line of RemediationConfig whose
// lineage matches a rules.TagRule, so callers can later render a subset
// of the remediation with emit.FilteredText.
func (w *WorkflowRemediation) ApplyRemediationTagRules(tagRules []rules.TagRule) {
	remediation := w.RemediationConfig()
	for _, n := range remediation.AllChildren() {
		for _, rule := range tagRules {
			if n.IsLineageMatch(rule.Lineage) {
				tags := make(map[string]struct{}, len(rule.ApplyTags))
				for _, t := range rule.ApplyTags {
					tags[t] = struct{}{}
				}
				n.AddTags(tags)
			}
		}
	}
}

// RemediationConfigFilteredText renders RemediationConfig restricted to
// lines passing the tag include/exclude filter ApplyRemediationTagRules
// applied (package emit).
func (w *WorkflowRemediation) RemediationConfigFilteredText(include, exclude map[string]struct{}, style string) string {
	return emit.FilteredText(w.RemediationConfig(), include, exclude, style)
}

// RemediationConfigText renders the full, unfiltered remediation.
func (w *WorkflowRemediation) RemediationConfigText(style string) string {
	return emit.Text(w.RemediationConfig(), style)
}

// RollbackConfigText renders the full, unfiltered rollback.
func (w *WorkflowRemediation) RollbackConfigText(style string) string {
	return emit.Text(w.RollbackConfig(), style)
}

// Future returns the config diff.Future predicts would result from
// applying RemediationConfig to running — useful for previewing a
// remediation before committing it to a device.
func (w *WorkflowRemediation) Future() *tree.Node {
	return diff.Future(w.running, w.RemediationConfig())
}
