package libtourney

// Triangle is a directed 3-cycle on vertices I < J < K.
type Triangle struct {
	I, J, K int

	// Clockwise is set when the cycle runs I->J->K->I, and clear when it runs I->K->J->I.
	Clockwise bool
}

// FindTriangles returns every directed triangle of T in lexicographic (I,J,K) order.
//
// Only directed triangles can hold a length-2 path u->m->v where v beats u; in a transitive
// triple every such path is shadowed by a direct arc.
func FindTriangles(T *Tournament) []Triangle {
	q := T.Order()
	var tris []Triangle
	for i := 0; i < q; i++ {
		for j := i + 1; j < q; j++ {
			sij := T.Sign(i, j)
			for k := j + 1; k < q; k++ {
				if sij == T.Sign(j, k) && sij == T.Sign(k, i) {
					tris = append(tris, Triangle{
						I:         i,
						J:         j,
						K:         k,
						Clockwise: sij > 0,
					})
				}
			}
		}
	}
	return tris
}

// CountTriangles returns len(FindTriangles(T)) without allocating, using
// C(q,3) - sum_v C(outdeg(v), 2).
func CountTriangles(T *Tournament) int {
	q := T.Order()
	n := q * (q - 1) * (q - 2) / 6
	for v := 0; v < q; v++ {
		d := T.OutDegree(v)
		n -= d * (d - 1) / 2
	}
	return n
}
