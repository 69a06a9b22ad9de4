// Package loader builds a [graph.Graph] from a serialized model.
//
// Construction runs four ordered passes over the decoded model:
//
//  1. Pre-registration: every non-empty input and output name of every
//     operation record becomes an Internal value.
//  2. Initializers: each initializer's value is upgraded to Initializer and
//     its payload attached.
//  3. Graph inputs and outputs: values are upgraded to Input or Output.
//  4. Operations: each record is validated and added, in source order, with
//     its inputs and outputs resolved to the values from pass 1.
//
// Because roles only move up (see [graph.Value.UpgradeRole]), every value
// ends with the highest role any declaration gave it, whatever order the
// declarations appear in.
//
// Loading is atomic: any failure discards the partial graph and returns a
// single coded error from pkg/errors. Progress can be traced by passing
// [WithHooks].
package loader
