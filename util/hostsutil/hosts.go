package hostsutil

import (
	"net/netip"
	"sort"

	"github.com/jaytaylor/go-hostsfile"
	"github.com/josexy/hosts-whitelist/util/logger"
)

// SystemHosts returns the system hosts file as "address hostname" candidate
// lines, sorted by hostname.
func SystemHosts() ([]string, error) {
	return parseHosts(hostsfile.ReadHostsFile())
}

func parseHosts(content []byte, err error) ([]string, error) {
	mp, err := hostsfile.ParseHosts(content, err)
	if err != nil {
		return nil, err
	}
	hostsMap := make(map[string][]netip.Addr)
	for ip, hosts := range mp {
		addr, err := netip.ParseAddr(ip)
		if err != nil {
			continue
		}
		for _, host := range hosts {
			logger.Logger.Tracef("read hosts record: [%s]->[%s]", ip, host)
			hostsMap[host] = append(hostsMap[host], addr)
		}
	}

	hosts := make([]string, 0, len(hostsMap))
	for host := range hostsMap {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	var lines []string
	for _, host := range hosts {
		addrs := hostsMap[host]
		sort.Slice(addrs, func(i, j int) bool { return addrs[i].Less(addrs[j]) })
		for _, addr := range addrs {
			lines = append(lines, addr.String()+" "+host)
		}
	}
	return lines, nil
}
