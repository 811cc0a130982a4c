package api

import (
	"context"
	"encoding/json"
	"io"

	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/mapping"
	"github.com/swoga/cpehal/model"
	"github.com/swoga/cpehal/platform"
)

// lineConfig is the body of POST dsl/line/<n>/configure. Profiles are
// comma separated names, e.g. "8a,17a,35b".
type lineConfig struct {
	XTSE          []int  `json:"xtse"`
	VDSL2Profiles string `json:"vdsl2_profiles"`
	FastProfiles  string `json:"fast_profiles"`
	DataGathering bool   `json:"data_gathering"`
	LimitMask     uint32 `json:"limit_mask"`
	US0Mask       uint32 `json:"us0_mask"`
}

func (c lineConfig) params() (model.ConfigParams, error) {
	const op = "api.dsl.Configure"
	p := model.ConfigParams{
		EnableDataGathering: c.DataGathering,
		LimitMask:           c.LimitMask,
		US0Mask:             c.US0Mask,
	}
	for _, bit := range c.XTSE {
		if bit < 1 || bit > 64 {
			return p, halerr.Errorf(halerr.InvalidArgument, op, "xtse bit %d out of range [1, 64]", bit)
		}
		p.XTSE.Set(model.XTSEBit(bit))
	}

	vdsl2, unknown := mapping.VDSL2Profiles.ParseMask(c.VDSL2Profiles)
	if len(unknown) > 0 {
		return p, halerr.Errorf(halerr.InvalidArgument, op, "unknown VDSL2 profiles %v", unknown)
	}
	fast, unknown := mapping.FastProfiles.ParseMask(c.FastProfiles)
	if len(unknown) > 0 {
		return p, halerr.Errorf(halerr.InvalidArgument, op, "unknown G.fast profiles %v", unknown)
	}
	p.VDSL2Profiles = model.Profile(vdsl2)
	p.FastProfiles = model.FastProfile(fast)
	return p, nil
}

// atmConfig is the body of POST dsl/atm/<n>/configure.
type atmConfig struct {
	LinkType            string `json:"link_type"`
	VPI                 uint32 `json:"vpi"`
	VCI                 uint32 `json:"vci"`
	Encapsulation       string `json:"encapsulation"`
	QoSClass            string `json:"qos_class"`
	PeakCellRate        uint32 `json:"peak_cell_rate"`
	MaxBurstSize        uint32 `json:"max_burst_size"`
	SustainableCellRate uint32 `json:"sustainable_cell_rate"`
}

func lookup(table mapping.Table, field, name string) (int, error) {
	v := table.Value(name)
	if v == mapping.NotFound {
		return 0, halerr.Errorf(halerr.InvalidArgument, "api.atm.Configure", "unknown %s %q", field, name)
	}
	return v, nil
}

func (c atmConfig) link() (model.ATMLink, model.ATMLinkQoS, error) {
	linkType, err := lookup(mapping.ATMLinkTypes, "link_type", c.LinkType)
	if err != nil {
		return model.ATMLink{}, model.ATMLinkQoS{}, err
	}
	encap, err := lookup(mapping.ATMEncapsulations, "encapsulation", c.Encapsulation)
	if err != nil {
		return model.ATMLink{}, model.ATMLinkQoS{}, err
	}
	class, err := lookup(mapping.ATMQoSClasses, "qos_class", c.QoSClass)
	if err != nil {
		return model.ATMLink{}, model.ATMLinkQoS{}, err
	}
	link := model.ATMLink{
		LinkType:      model.ATMLinkType(linkType),
		DestAddr:      model.ATMDestAddr{VPI: c.VPI, VCI: c.VCI},
		Encapsulation: model.ATMEncapsulation(encap),
	}
	qos := model.ATMLinkQoS{
		Class:               model.ATMQoSClass(class),
		PeakCellRate:        c.PeakCellRate,
		MaxBurstSize:        c.MaxBurstSize,
		SustainableCellRate: c.SustainableCellRate,
	}
	return link, qos, nil
}

func decode(op string, body io.Reader, v interface{}) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return halerr.New(halerr.InvalidArgument, op, err)
	}
	return nil
}

// configureRequest handles {line,atm}/<n>/configure.
func configureRequest(ctx context.Context, p *platform.Platform, parts []string, body io.Reader) error {
	if len(parts) != 3 {
		return errNotFound
	}
	if p.DSL == nil {
		return halerr.New(halerr.NotSupported, "api.Configure", nil)
	}
	n, err := index("api.Configure", parts[1])
	if err != nil {
		return err
	}

	switch parts[0] {
	case "line":
		var c lineConfig
		if err := decode("api.dsl.Configure", body, &c); err != nil {
			return err
		}
		params, err := c.params()
		if err != nil {
			return err
		}
		return p.DSL.Configure(ctx, n, params)
	case "atm":
		var c atmConfig
		if err := decode("api.atm.Configure", body, &c); err != nil {
			return err
		}
		link, qos, err := c.link()
		if err != nil {
			return err
		}
		return p.DSL.ATMConfigure(ctx, n, link, qos)
	}
	return errNotFound
}
