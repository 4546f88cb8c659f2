package reconcile

import (
	"sort"

	"importdesk/internal/model"
)

// ProviderGroup is one request-flow partition: the line items a single
// provider will supply. The backend materializes one import request
// per group.
type ProviderGroup struct {
	ProviderID   int64            `json:"providerId"`
	ProviderName string           `json:"providerName"`
	Items        []model.LineItem `json:"items"`
}

// GroupByProvider partitions validated line items by provider id.
// Groups come out in ascending provider id and items keep their upload
// order, so the same input always yields the same grouping. Every
// input item lands in exactly one group.
func GroupByProvider(items []model.LineItem) []ProviderGroup {
	byProvider := make(map[int64]*ProviderGroup)
	for _, li := range items {
		g, ok := byProvider[li.ProviderID]
		if !ok {
			g = &ProviderGroup{ProviderID: li.ProviderID, ProviderName: li.ProviderName}
			byProvider[li.ProviderID] = g
		}
		g.Items = append(g.Items, li)
	}

	ids := make([]int64, 0, len(byProvider))
	for id := range byProvider {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	groups := make([]ProviderGroup, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, *byProvider[id])
	}
	return groups
}

// MergeResult is the order-flow reconciliation outcome.
type MergeResult struct {
	// Rows has one entry per existing request detail, in the order the
	// details were supplied.
	Rows []model.ReconciledRow `json:"rows"`
	// Matched counts uploaded entries that landed on a request line.
	Matched int `json:"matched"`
	// Skipped counts uploaded entries whose item is outside the
	// request. They are discarded, never silently accepted.
	Skipped int `json:"skipped"`
}

// MergeWithRequest left-joins uploaded order lines onto the request's
// existing details by item id. A detail without an uploaded line keeps
// a nil planned quantity. When the same item appears twice in the
// upload the last entry wins, matching how the console resolved
// duplicates. Pure function of its two inputs.
func MergeWithRequest(existing []model.ImportRequestDetail, uploaded []model.ImportOrderDetail) MergeResult {
	inRequest := make(map[int64]bool, len(existing))
	for _, d := range existing {
		inRequest[d.ItemID] = true
	}

	planned := make(map[int64]int64)
	var res MergeResult
	for _, u := range uploaded {
		if !inRequest[u.ItemID] {
			res.Skipped++
			continue
		}
		res.Matched++
		planned[u.ItemID] = u.PlannedQuantity
	}

	res.Rows = make([]model.ReconciledRow, 0, len(existing))
	for _, d := range existing {
		row := model.ReconciledRow{
			ItemID:          d.ItemID,
			ItemName:        d.ItemName,
			ExpectQuantity:  d.ExpectQuantity,
			OrderedQuantity: d.OrderedQuantity,
		}
		if q, ok := planned[d.ItemID]; ok {
			v := q
			row.PlannedQuantity = &v
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}

// PlannedDetails returns the uploaded lines that matched the request,
// one per item in the order of the existing details. This is the set
// attached to the created order.
func (r MergeResult) PlannedDetails() []model.ImportOrderDetail {
	details := make([]model.ImportOrderDetail, 0, r.Matched)
	for _, row := range r.Rows {
		if row.PlannedQuantity != nil {
			details = append(details, model.ImportOrderDetail{
				ItemID:          row.ItemID,
				PlannedQuantity: *row.PlannedQuantity,
			})
		}
	}
	return details
}
