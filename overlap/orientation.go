package overlap

// SelectOrientation keeps whichever orientation overlapped less with the
// network's optimal paths. Ties go to the forward traversal so the choice is
// deterministic and order-preserving.
func SelectOrientation(forward, reverse Result) Result {
	if reverse.OverlapDistance < forward.OverlapDistance {
		return reverse
	}

	return forward
}
