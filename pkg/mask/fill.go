package mask

import "github.com/dd0wney/regionmask/pkg/mesh"

// FloodFill marks every Unmarked cell reachable from start without crossing
// a classified cell as Inside. Classified cells are never overwritten.
// It returns the number of cells marked.
func FloodFill(m *mesh.Mesh, start int, cells CellMask) (int, error) {
	if err := checkMask("floodfill", m, cells); err != nil {
		return 0, err
	}
	if err := checkCell("floodfill", m, start); err != nil {
		return 0, err
	}

	marked := 0
	if cells[start] == Unmarked {
		cells[start] = Inside
		marked++
	}

	stack := []int{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, nb := range m.Neighbors(c) {
			if cells[nb] == Unmarked {
				cells[nb] = Inside
				marked++
				stack = append(stack, nb)
			}
		}
	}
	return marked, nil
}
