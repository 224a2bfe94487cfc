// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// SamplerDescriptor describes a sampler to create.
type SamplerDescriptor = gputypes.SamplerDescriptor

// MaxAnisotropy is the highest accepted anisotropic filtering level.
const MaxAnisotropy = 16
