package localtime

type SubscriptionID uint64

type subscriber struct {
	id SubscriptionID
	f  func()
}

// subscribers keeps the finish callbacks in subscription order. The zero
// value is ready to use.
type subscribers struct {
	last SubscriptionID
	l    []subscriber
}

// add returns zero for nil f; zero is never a valid id.
func (ss *subscribers) add(f func()) SubscriptionID {
	if f == nil {
		return 0
	}

	ss.last++
	ss.l = append(ss.l, subscriber{id: ss.last, f: f})

	return ss.last
}

func (ss *subscribers) remove(id SubscriptionID) bool {
	for i := range ss.l {
		if ss.l[i].id != id {
			continue
		}

		l := make([]subscriber, 0, len(ss.l)-1)
		l = append(l, ss.l[:i]...)
		ss.l = append(l, ss.l[i+1:]...)

		return true
	}

	return false
}

func (ss *subscribers) len() int {
	return len(ss.l)
}

// call runs the callbacks subscribed at the moment of calling; changes made
// by the callbacks apply from the next call.
func (ss *subscribers) call() {
	l := ss.l
	for i := range l {
		l[i].f()
	}
}
