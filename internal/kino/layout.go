package kino

// Theater is one physical cinema location with 1-3 rooms.
type Theater struct {
	Name         string
	Slug         string
	KinoheldID   string
	Rooms        []string
	AuditoriumID map[int]string
}

// Layout is the fixed enumeration of the three Tübingen cinemas and their
// seven rooms. View output orders theaters and rooms by this enumeration,
// never alphabetically or by insertion.
type Layout struct {
	Theaters []Theater
}

func DefaultLayout() Layout {
	return Layout{
		Theaters: []Theater{
			{
				Name:       "Kino Blaue Brücke",
				Slug:       "kino-blaue-bruecke-tuebingen",
				KinoheldID: "3623",
				Rooms:      []string{"Saal Tarantino", "Saal Spielberg", "Saal Kubrick"},
				AuditoriumID: map[int]string{
					11115: "Saal Tarantino",
					11117: "Saal Spielberg",
					11119: "Saal Kubrick",
				},
			},
			{
				Name:       "Kino Museum",
				Slug:       "kino-museum-tuebingen",
				KinoheldID: "3625",
				Rooms:      []string{"Saal Almodóvar", "Saal Coppola", "Saal Arsenal"},
				AuditoriumID: map[int]string{
					11121: "Saal Almodóvar",
					11123: "Saal Coppola",
					11125: "Saal Arsenal",
				},
			},
			{
				Name:       "Kino Atelier",
				Slug:       "kino-atelier-tuebingen",
				KinoheldID: "3627",
				Rooms:      []string{"Atelier"},
				AuditoriumID: map[int]string{
					11127: "Atelier",
				},
			},
		},
	}
}

// AllRooms returns every room in layout order.
func (l Layout) AllRooms() []string {
	var rooms []string
	for _, t := range l.Theaters {
		rooms = append(rooms, t.Rooms...)
	}
	return rooms
}

// TheaterForRoom resolves a canonical room name to its owning cinema.
func (l Layout) TheaterForRoom(room string) (Theater, bool) {
	for _, t := range l.Theaters {
		for _, r := range t.Rooms {
			if r == room {
				return t, true
			}
		}
	}
	return Theater{}, false
}

// SlugForRoom returns the kinoheld slug of the cinema owning the room.
func (l Layout) SlugForRoom(room string) (string, bool) {
	t, ok := l.TheaterForRoom(room)
	if !ok {
		return "", false
	}
	return t.Slug, true
}

// RoomForAuditorium resolves a kinoheld auditorium id to a canonical room
// name and its theater. Used by the live-API path in place of room-name text.
func (l Layout) RoomForAuditorium(id int) (room string, theater Theater, ok bool) {
	for _, t := range l.Theaters {
		if r, found := t.AuditoriumID[id]; found {
			return r, t, true
		}
	}
	return "", Theater{}, false
}

// KinoheldIDs returns the booking-system cinema ids in layout order.
func (l Layout) KinoheldIDs() []string {
	ids := make([]string, len(l.Theaters))
	for i, t := range l.Theaters {
		ids[i] = t.KinoheldID
	}
	return ids
}
