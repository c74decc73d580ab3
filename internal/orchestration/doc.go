// Package orchestration drives the lifecycle of a study's cloud footprint.
//
// The lifecycle is organized as a sequence of phases run against a shared
// context:
//   - network: the study VPC and its ingress firewall in every project
//   - subnets: conflict pruning and role subnet creation
//   - peerings: the full peering mesh between participant projects
//   - instances: one protocol VM per participant
//
// Setup runs the phases in order and writes results back to the study
// record; Restart and Delete unwind the footprint to different depths.
package orchestration
