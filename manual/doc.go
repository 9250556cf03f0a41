// Package manual implements the santa tutorial: a markdown manual that grows
// as the user reaches milestones, and the persisted progress that drives it.
//
// Progress is a [Milestone] stored in a small YAML file inside a directory
// owned by a [Tutor], normally under the user cache directory. The current
// milestone is also the patch component of the language version scripts see
// as SANTA_VERSION, so completing a milestone visibly upgrades the language.
//
// A [Tutor] never hooks into evaluation. After a program finishes, the CLI
// hands the parsed program and its environment to [Tutor.Observe], which
// checks the goal of the current milestone against them.
package manual
