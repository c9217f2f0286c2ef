package simulation

//go:generate flatc --go -o ../bindings ../schema/warsim.fbs

import (
	"errors"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/signalnine/beggar/gosim/bindings/warsim"
	"github.com/signalnine/beggar/gosim/engine"
)

// ErrMalformedBatch is returned for buffers that are not a valid batch
var ErrMalformedBatch = errors.New("malformed batch buffer")

// DealRequest is an explicit deal to simulate. Err is set when the deal
// could not be decoded; it is reported for this deal only.
type DealRequest struct {
	P1  engine.Deck
	P2  engine.Deck
	Err error
}

// BatchRequest is the decoded form of warsim.BatchRequest
type BatchRequest struct {
	BatchID     uint64
	Deals       []DealRequest
	RandomDeals uint32
	Seed        uint64
}

// BatchOutcome is one entry of a batch response. Err is set instead of
// Result when the deal could not be simulated.
type BatchOutcome struct {
	Result engine.Result
	Err    string
}

// BatchResponse is the decoded form of warsim.BatchResponse
type BatchResponse struct {
	BatchID       uint64
	Outcomes      []BatchOutcome
	InfiniteCount uint32
}

// RunEncodedBatch decodes a warsim.BatchRequest, simulates the explicit
// deals followed by RandomDeals random deals drawn from Seed, and returns
// an encoded warsim.BatchResponse with one result per deal.
func RunEncodedBatch(request []byte) (response []byte, err error) {
	req, err := DecodeBatchRequest(request)
	if err != nil {
		return nil, err
	}

	outcomes := make([]BatchOutcome, 0, len(req.Deals)+int(req.RandomDeals))
	for i, deal := range req.Deals {
		if err := checkDeal(i, deal); err != nil {
			outcomes = append(outcomes, BatchOutcome{Err: err.Error()})
			continue
		}
		outcomes = append(outcomes, BatchOutcome{Result: RunDeal(deal.P1, deal.P2).Result})
	}
	if req.RandomDeals > 0 {
		rng := newRNG(req.Seed)
		for i := uint32(0); i < req.RandomDeals; i++ {
			outcomes = append(outcomes, BatchOutcome{Result: RunSingleGame(rng.Uint64()).Result})
		}
	}

	resp := BatchResponse{BatchID: req.BatchID, Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Err == "" && o.Result.Infinite {
			resp.InfiniteCount++
		}
	}
	return EncodeBatchResponse(resp), nil
}

// checkDeal rejects deals that could not come from a standard deck
func checkDeal(i int, deal DealRequest) error {
	if deal.Err != nil {
		return deal.Err
	}
	if n := len(deal.P1) + len(deal.P2); n > engine.FullDeckSize {
		return fmt.Errorf("deal %d: %d cards, at most %d allowed", i, n, engine.FullDeckSize)
	}
	_, f1 := deal.P1.Counts()
	_, f2 := deal.P2.Counts()
	if f := f1 + f2; f > engine.FaceCards {
		return fmt.Errorf("deal %d: %d face cards, at most %d allowed", i, f, engine.FaceCards)
	}
	return nil
}

// EncodeBatchRequest serializes req as a warsim.BatchRequest
func EncodeBatchRequest(req BatchRequest) []byte {
	builder := flatbuffers.NewBuilder(256)

	dealOffsets := make([]flatbuffers.UOffsetT, len(req.Deals))
	for i, d := range req.Deals {
		p1 := builder.CreateByteVector(d.P1.Bytes())
		p2 := builder.CreateByteVector(d.P2.Bytes())
		warsim.DealStart(builder)
		warsim.DealAddP1Deck(builder, p1)
		warsim.DealAddP2Deck(builder, p2)
		dealOffsets[i] = warsim.DealEnd(builder)
	}

	warsim.BatchRequestStartDealsVector(builder, len(dealOffsets))
	for i := len(dealOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(dealOffsets[i])
	}
	deals := builder.EndVector(len(dealOffsets))

	warsim.BatchRequestStart(builder)
	warsim.BatchRequestAddBatchId(builder, req.BatchID)
	warsim.BatchRequestAddDeals(builder, deals)
	warsim.BatchRequestAddRandomDeals(builder, req.RandomDeals)
	warsim.BatchRequestAddSeed(builder, req.Seed)
	builder.Finish(warsim.BatchRequestEnd(builder))

	return builder.FinishedBytes()
}

// DecodeBatchRequest parses a warsim.BatchRequest. A deal holding unknown
// card bytes keeps its place with Err set.
func DecodeBatchRequest(buf []byte) (req BatchRequest, err error) {
	defer recoverMalformed(&err)
	if len(buf) < flatbuffers.SizeUOffsetT {
		return req, ErrMalformedBatch
	}

	fb := warsim.GetRootAsBatchRequest(buf, 0)
	req.BatchID = fb.BatchId()
	req.RandomDeals = fb.RandomDeals()
	req.Seed = fb.Seed()

	deal := new(warsim.Deal)
	for i := 0; i < fb.DealsLength(); i++ {
		if !fb.Deals(deal, i) {
			continue
		}
		req.Deals = append(req.Deals, decodeDeal(i, deal))
	}
	return req, nil
}

func decodeDeal(i int, deal *warsim.Deal) DealRequest {
	p1, err := engine.DeckFromBytes(deal.P1DeckBytes())
	if err != nil {
		return DealRequest{Err: fmt.Errorf("deal %d player 1: %w", i, err)}
	}
	p2, err := engine.DeckFromBytes(deal.P2DeckBytes())
	if err != nil {
		return DealRequest{Err: fmt.Errorf("deal %d player 2: %w", i, err)}
	}
	return DealRequest{P1: p1, P2: p2}
}

// EncodeBatchResponse serializes resp as a warsim.BatchResponse
func EncodeBatchResponse(resp BatchResponse) []byte {
	builder := flatbuffers.NewBuilder(1024)

	resultOffsets := make([]flatbuffers.UOffsetT, len(resp.Outcomes))
	for i, o := range resp.Outcomes {
		resultOffsets[i] = serializeResult(builder, o)
	}

	warsim.BatchResponseStartResultsVector(builder, len(resultOffsets))
	for i := len(resultOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(resultOffsets[i])
	}
	results := builder.EndVector(len(resultOffsets))

	warsim.BatchResponseStart(builder)
	warsim.BatchResponseAddBatchId(builder, resp.BatchID)
	warsim.BatchResponseAddResults(builder, results)
	warsim.BatchResponseAddInfiniteCount(builder, resp.InfiniteCount)
	builder.Finish(warsim.BatchResponseEnd(builder))

	return builder.FinishedBytes()
}

func serializeResult(builder *flatbuffers.Builder, o BatchOutcome) flatbuffers.UOffsetT {
	// vectors and strings must be created before the table
	var errOffset flatbuffers.UOffsetT
	if o.Err != "" {
		errOffset = builder.CreateString(o.Err)
	}
	p1 := builder.CreateByteVector(o.Result.P1Start.Bytes())
	p2 := builder.CreateByteVector(o.Result.P2Start.Bytes())

	warsim.ResultStart(builder)
	warsim.ResultAddP1Start(builder, p1)
	warsim.ResultAddP2Start(builder, p2)
	warsim.ResultAddTricks(builder, o.Result.Tricks)
	warsim.ResultAddCards(builder, o.Result.Cards)
	warsim.ResultAddInfinite(builder, o.Result.Infinite)
	if errOffset > 0 {
		warsim.ResultAddErrorMessage(builder, errOffset)
	}
	return warsim.ResultEnd(builder)
}

// DecodeBatchResponse parses a warsim.BatchResponse
func DecodeBatchResponse(buf []byte) (resp BatchResponse, err error) {
	defer recoverMalformed(&err)
	if len(buf) < flatbuffers.SizeUOffsetT {
		return resp, ErrMalformedBatch
	}

	fb := warsim.GetRootAsBatchResponse(buf, 0)
	resp.BatchID = fb.BatchId()
	resp.InfiniteCount = fb.InfiniteCount()

	result := new(warsim.Result)
	for i := 0; i < fb.ResultsLength(); i++ {
		if !fb.Results(result, i) {
			continue
		}
		p1, err := engine.DeckFromBytes(result.P1StartBytes())
		if err != nil {
			return resp, fmt.Errorf("result %d: %w", i, err)
		}
		p2, err := engine.DeckFromBytes(result.P2StartBytes())
		if err != nil {
			return resp, fmt.Errorf("result %d: %w", i, err)
		}
		resp.Outcomes = append(resp.Outcomes, BatchOutcome{
			Result: engine.Result{
				P1Start:  p1,
				P2Start:  p2,
				Tricks:   result.Tricks(),
				Cards:    result.Cards(),
				Infinite: result.Infinite(),
			},
			Err: string(result.ErrorMessage()),
		})
	}
	return resp, nil
}

// recoverMalformed turns an out-of-range read on a corrupt buffer into
// ErrMalformedBatch.
func recoverMalformed(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrMalformedBatch, r)
	}
}
