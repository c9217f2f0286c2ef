package main

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"
import (
	"unsafe"

	"github.com/signalnine/beggar/gosim/simulation"
)

//export SimulateBatch
func SimulateBatch(requestPtr unsafe.Pointer, requestLen C.int, responseLen *C.int) unsafe.Pointer {
	requestBytes := C.GoBytes(requestPtr, requestLen)

	// Deals run sequentially here. Callers that want parallelism issue
	// several batches from their own workers.
	responseBytes, err := simulation.RunEncodedBatch(requestBytes)
	if err != nil {
		responseBytes = errorResponse(err)
	}

	*responseLen = C.int(len(responseBytes))

	// Allocate C memory for response (caller must free)
	cBytes := C.malloc(C.size_t(len(responseBytes)))
	if cBytes == nil {
		*responseLen = 0
		return nil
	}

	C.memcpy(cBytes, unsafe.Pointer(&responseBytes[0]), C.size_t(len(responseBytes)))

	return cBytes
}

//export FreeResponse
func FreeResponse(ptr unsafe.Pointer) {
	C.free(ptr)
}

// errorResponse reports a request that could not be decoded as a
// response with a single failed outcome.
func errorResponse(err error) []byte {
	return simulation.EncodeBatchResponse(simulation.BatchResponse{
		Outcomes: []simulation.BatchOutcome{{Err: err.Error()}},
	})
}

func main() {} // Required for CGo
