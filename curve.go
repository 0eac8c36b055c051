package supplycurve

import (
	"fmt"
	"time"
)

// BuildCurve dates a block issuance schedule.
//
// Row i is dated start + i*blockTime, and its TotalPct is its total supply
// relative to the last block's, so the last row is always at 100%.
func BuildCurve(start time.Time, blockTime Frequency, blocks []BlockSupply) (*Series, error) {
	if len(blocks) == 0 {
		return nil, ErrEmptySeries
	}
	if blockTime.IsZero() {
		return nil, fmt.Errorf("%w: zero block time", ErrInvalidArgument)
	}
	last := blocks[len(blocks)-1].Total
	if last.IsZero() {
		return nil, ErrZeroTerminalSupply
	}

	dates := blockTime.Range(start, len(blocks))
	rows := make([]Row, len(blocks))
	for i, b := range blocks {
		rows[i] = Row{
			Block:    b.Block,
			Date:     dates[i],
			Total:    b.Total,
			TotalPct: b.Total.PercentOf(last),
		}
	}
	return &Series{variant: BlockCurve, rows: rows}, nil
}

// BuildConstantCurve returns numWeeks weekly rows starting at start, all with
// the same total supply, of which pctDistributed (in [0, 1]) is already
// distributed.
//
// A non positive numWeeks returns an empty series.
func BuildConstantCurve(start time.Time, numWeeks int, amount Quantity, pctDistributed float64) (*Series, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: supply amount %s must be positive", ErrInvalidArgument, amount)
	}
	if pctDistributed < 0 || pctDistributed > 1 {
		return nil, fmt.Errorf("%w: distributed fraction %v not in [0, 1]", ErrInvalidArgument, pctDistributed)
	}
	if numWeeks <= 0 {
		return &Series{variant: ConstantCurve}, nil
	}

	distributed := amount.Mul(Q(pctDistributed))
	distributedPct := Percent(pctDistributed * 100)
	dates := Weekly.Range(start, numWeeks)
	rows := make([]Row, numWeeks)
	for i := range rows {
		rows[i] = Row{
			Date:           dates[i],
			Total:          amount,
			TotalPct:       amount.PercentOf(amount),
			Distributed:    distributed,
			DistributedPct: distributedPct,
		}
	}
	return &Series{variant: ConstantCurve, rows: rows}, nil
}
