package placement

import (
	"github.com/dd0wney/pipenet/pkg/metrics"
	"github.com/dd0wney/pipenet/pkg/pipenet"
	"github.com/dd0wney/pipenet/pkg/pubsub"
)

// fanout turns graph notifications into bus events and metrics. It runs
// inside graph mutations, so it only publishes and never calls back.
type fanout struct {
	bus     *pubsub.Bus
	metrics *metrics.Registry
}

func (f *fanout) OnTopologyChanged(s *pipenet.Segment) {
	kind := "unanchored"
	if s.Anchored() {
		kind = "anchored"
	}
	ev := pubsub.NewEvent(pubsub.TopicSegments, kind)
	ev.Segment = uint64(s.ID)
	ev.Position = s.Position
	ev.Anchored = s.Anchored()
	if n := s.Network(); n != nil {
		ev.Network = uint64(n.ID())
		ev.Size = n.Len()
	}
	f.publish(ev)
}

func (f *fanout) OnNetworkEvent(nev pipenet.NetworkEvent) {
	ev := pubsub.NewEvent(pubsub.TopicNetworks, nev.Kind.String())
	ev.Network = uint64(nev.Network)
	ev.Other = uint64(nev.Other)
	ev.Size = nev.Size
	f.publish(ev)

	if f.metrics != nil {
		f.metrics.RecordNetworkEvent(nev.Kind.String(), nev.Size)
	}
}

func (f *fanout) publish(ev pubsub.Event) {
	_, dropped := f.bus.Publish(ev)
	if f.metrics != nil {
		f.metrics.RecordPublish(string(ev.Topic), dropped)
	}
}
