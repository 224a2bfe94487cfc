// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import "fmt"

// Op identifies a wrapped operation. Reports and profiler counters are
// keyed by Op.
type Op uint8

// Render system operations.
const (
	OpUndefined Op = iota
	OpCreateRenderContext
	OpReleaseRenderContext
	OpCreateCommandBuffer
	OpReleaseCommandBuffer
	OpCreateBuffer
	OpCreateBufferArray
	OpReleaseBuffer
	OpReleaseBufferArray
	OpWriteBuffer
	OpMapBuffer
	OpUnmapBuffer
	OpCreateTexture
	OpCreateTextureArray
	OpReleaseTexture
	OpReleaseTextureArray
	OpWriteTexture
	OpReadTexture
	OpGenerateMips
	OpGenerateMipRange
	OpCreateSampler
	OpCreateSamplerArray
	OpReleaseSampler
	OpReleaseSamplerArray
	OpCreateResourceHeap
	OpReleaseResourceHeap
	OpCreateRenderTarget
	OpReleaseRenderTarget
	OpCreateShader
	OpCreateShaderProgram
	OpReleaseShader
	OpReleaseShaderProgram
	OpCreatePipelineLayout
	OpReleasePipelineLayout
	OpCreateGraphicsPipeline
	OpCreateComputePipeline
	OpReleaseGraphicsPipeline
	OpReleaseComputePipeline
	OpCreateQuery
	OpReleaseQuery
	OpCreateFence
	OpReleaseFence

	// Command queue operations.
	OpSubmit
	OpSubmitFence
	OpWaitFence
	OpWaitIdle

	// Command buffer operations.
	OpBegin
	OpEnd
	OpSetViewport
	OpSetScissor
	OpSetClearColor
	OpSetVertexBuffer
	OpSetVertexBufferArray
	OpSetIndexBuffer
	OpSetResourceHeap
	OpBeginRenderPass
	OpEndRenderPass
	OpSetGraphicsPipeline
	OpSetComputePipeline
	OpBeginQuery
	OpEndQuery
	OpDraw
	OpDrawIndexed
	OpDrawInstanced
	OpDrawIndexedInstanced
	OpDispatch

	// NumOps is the number of operations, usable as an array size.
	NumOps
)

var opNames = [...]string{
	OpUndefined:               "Undefined",
	OpCreateRenderContext:     "CreateRenderContext",
	OpReleaseRenderContext:    "ReleaseRenderContext",
	OpCreateCommandBuffer:     "CreateCommandBuffer",
	OpReleaseCommandBuffer:    "ReleaseCommandBuffer",
	OpCreateBuffer:            "CreateBuffer",
	OpCreateBufferArray:       "CreateBufferArray",
	OpReleaseBuffer:           "ReleaseBuffer",
	OpReleaseBufferArray:      "ReleaseBufferArray",
	OpWriteBuffer:             "WriteBuffer",
	OpMapBuffer:               "MapBuffer",
	OpUnmapBuffer:             "UnmapBuffer",
	OpCreateTexture:           "CreateTexture",
	OpCreateTextureArray:      "CreateTextureArray",
	OpReleaseTexture:          "ReleaseTexture",
	OpReleaseTextureArray:     "ReleaseTextureArray",
	OpWriteTexture:            "WriteTexture",
	OpReadTexture:             "ReadTexture",
	OpGenerateMips:            "GenerateMips",
	OpGenerateMipRange:        "GenerateMipRange",
	OpCreateSampler:           "CreateSampler",
	OpCreateSamplerArray:      "CreateSamplerArray",
	OpReleaseSampler:          "ReleaseSampler",
	OpReleaseSamplerArray:     "ReleaseSamplerArray",
	OpCreateResourceHeap:      "CreateResourceHeap",
	OpReleaseResourceHeap:     "ReleaseResourceHeap",
	OpCreateRenderTarget:      "CreateRenderTarget",
	OpReleaseRenderTarget:     "ReleaseRenderTarget",
	OpCreateShader:            "CreateShader",
	OpCreateShaderProgram:     "CreateShaderProgram",
	OpReleaseShader:           "ReleaseShader",
	OpReleaseShaderProgram:    "ReleaseShaderProgram",
	OpCreatePipelineLayout:    "CreatePipelineLayout",
	OpReleasePipelineLayout:   "ReleasePipelineLayout",
	OpCreateGraphicsPipeline:  "CreateGraphicsPipeline",
	OpCreateComputePipeline:   "CreateComputePipeline",
	OpReleaseGraphicsPipeline: "ReleaseGraphicsPipeline",
	OpReleaseComputePipeline:  "ReleaseComputePipeline",
	OpCreateQuery:             "CreateQuery",
	OpReleaseQuery:            "ReleaseQuery",
	OpCreateFence:             "CreateFence",
	OpReleaseFence:            "ReleaseFence",
	OpSubmit:                  "Submit",
	OpSubmitFence:             "SubmitFence",
	OpWaitFence:               "WaitFence",
	OpWaitIdle:                "WaitIdle",
	OpBegin:                   "Begin",
	OpEnd:                     "End",
	OpSetViewport:             "SetViewport",
	OpSetScissor:              "SetScissor",
	OpSetClearColor:           "SetClearColor",
	OpSetVertexBuffer:         "SetVertexBuffer",
	OpSetVertexBufferArray:    "SetVertexBufferArray",
	OpSetIndexBuffer:          "SetIndexBuffer",
	OpSetResourceHeap:         "SetResourceHeap",
	OpBeginRenderPass:         "BeginRenderPass",
	OpEndRenderPass:           "EndRenderPass",
	OpSetGraphicsPipeline:     "SetGraphicsPipeline",
	OpSetComputePipeline:      "SetComputePipeline",
	OpBeginQuery:              "BeginQuery",
	OpEndQuery:                "EndQuery",
	OpDraw:                    "Draw",
	OpDrawIndexed:             "DrawIndexed",
	OpDrawInstanced:           "DrawInstanced",
	OpDrawIndexedInstanced:    "DrawIndexedInstanced",
	OpDispatch:                "Dispatch",
}

// String returns the operation name, e.g. "CreateBuffer".
func (op Op) String() string {
	if op < NumOps {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// Profiler counts successful operations.
type Profiler interface {
	Record(op Op)
}
