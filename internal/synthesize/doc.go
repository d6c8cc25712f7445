// Package synthesize turns classified sections into candidate
// suggestions. Several extraction strategies run additively in a fixed
// order, threading an accumulator of candidates and covered evidence so
// later strategies only fill gaps the earlier ones left:
//
//  1. canonical per-section synthesis
//  2. topic isolation for mixed-topic sections
//  3. dense-paragraph sentence extraction
//  4. signal-seeded candidates (feature demand, bug, risk patterns)
//  5. semantic idea extraction
//  6. structural last-resort bypass
//
// Suppression rules (process-noise headings, derivative sections,
// hedged concern lines) apply across all strategies.
package synthesize
